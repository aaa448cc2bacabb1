package shared

const (
	MEMORY_STORE    = "memory"
	SQLITE_STORE    = "sqlite"
	FIRESTORE_STORE = "firestore"
)

type ServerConfig struct {
	Listener ListenerConfig `mapstructure:"listener" validate:"required"`
	Twilio   TwilioConfig   `mapstructure:"twilio" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" validate:"required"`
	Contacts ContactsConfig `mapstructure:"contacts"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Google   GoogleConfig   `mapstructure:"google"`
	Cron     CronConfig     `mapstructure:"cron"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

type TwilioConfig struct {
	AccountSid  string `mapstructure:"accountSid" validate:"required"`
	AuthToken   string `mapstructure:"authToken" validate:"required"`
	PhoneNumber string `mapstructure:"phoneNumber" validate:"required"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite firestore"`
}

// ContactsConfig holds the static contact list used by the 'memory' store
type ContactsConfig struct {
	Static []string `mapstructure:"static" validate:"dive,required"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase"`
	Dir        string `mapstructure:"dir"`
}

type GoogleConfig struct {
	ApplicationCredentials string          `mapstructure:"applicationCredentials"`
	ProjectID              string          `mapstructure:"projectId"`
	Storage                StorageConfig   `mapstructure:"storage"`
	Firestore              FirestoreConfig `mapstructure:"firestore"`
}

type StorageConfig struct {
	Bucket               string `mapstructure:"bucket" validate:"required_with=EnableSqliteBackup"`
	Prefix               string `mapstructure:"prefix"`
	SqliteBackupSchedule string `mapstructure:"sqliteBackupSchedule" validate:"required_with=EnableSqliteBackup"`
	EnableSqliteBackup   bool   `mapstructure:"enableSqliteBackup"`
}

type FirestoreConfig struct {
	Collection string `mapstructure:"collection"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone"`
}

func (c *ServerConfig) StoreOptionsError() string {
	switch c.Store.Driver {
	case MEMORY_STORE:
		if len(c.Contacts.Static) == 0 {
			return "'contacts.static' must list at least one phone number for the memory store"
		}
	case SQLITE_STORE:
		if c.Sqlite.PassPhrase == "" {
			return "'sqlite.passPhrase' is required for the sqlite store"
		}
	case FIRESTORE_STORE:
		if c.Google.ProjectID == "" {
			return "'google.projectId' is required for the firestore store"
		}
	}

	return ""
}
