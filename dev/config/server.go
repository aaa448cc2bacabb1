package config

// SERVER_YML is the server config used in dev mode. Messages are logged
// instead of being sent through twilio, so the twilio values are placeholders.
const SERVER_YML = `
listener:
  port: 3000

twilio:
  accountSid: ACdev
  authToken: dev-token
  phoneNumber: "+15005550006"

store:
  driver: memory

contacts:
  static:
    - "+15005550001"
    - "+15005550002"

sqlite:
  passPhrase: passphrase

cron:
  timeZone: "America/Toronto"

google:
  projectId: sosrelay-dev
  firestore:
    collection: contacts-dev
  storage:
    bucket: "sosrelay"
    prefix: "sosrelay-dev"
    sqliteBackupSchedule: "*/30 * * * *"
    enableSqliteBackup: false
  applicationCredentials:
`
