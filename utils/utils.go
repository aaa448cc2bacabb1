package utils

import (
	"log"
	"os"
	"strconv"
)

func FileExist(filePath string) bool {
	var err error

	if _, err = os.Stat(filePath); os.IsNotExist(err) {
		return false
	}

	if err != nil {
		log.Panic(err)
	}

	return true
}

func CreateDirIfNotExist(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}

	return nil
}

// FormatFloat returns the shortest decimal representation of f e.g 12.9 -> "12.9"
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
