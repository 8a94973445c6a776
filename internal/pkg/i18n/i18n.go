package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type Translations map[string]string

// defaults is the built-in English catalog. Locale directories loaded via
// LoadTranslations override or extend it per locale.
var defaults = Translations{
	"complaint.received":       "Your complaint has been received and is under review.",
	"complaint.status_changed": "Complaint status changed to %s",
	"complaint.assigned":       "Complaint assigned to administrator %s",
	"complaint.images_added":   "%d new images were added to the complaint",
	"complaint.deleted":        "Complaint deleted successfully",
	"category.deleted":         "Category deleted successfully",
	"log.deleted":              "Log deleted successfully",
	"logs.deleted":             "Logs deleted successfully",
	"notification.deleted":     "Notification deleted successfully",
	"notifications.deleted":    "Notifications deleted successfully",
	"rating.deleted":           "Rating deleted successfully",
	"user.deactivated":         "User deactivated successfully",
	"user.deleted":             "User deleted permanently",
	"password.changed":         "Password changed successfully",
}

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
)

func LoadTranslations(localePath string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := os.ReadDir(localePath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			locale := entry.Name()
			filePath := filepath.Join(localePath, locale, "messages.yaml")

			data, err := os.ReadFile(filePath)
			if err != nil {
				continue
			}

			var config struct {
				Messages Translations `yaml:"MESSAGES"`
			}

			if err := yaml.Unmarshal(data, &config); err != nil {
				return fmt.Errorf("failed to parse %s: %w", filePath, err)
			}

			locales[locale] = config.Messages
		}
	}

	return nil
}

func Translate(locale, key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if val, ok := defaults[key]; ok {
		return val
	}

	return key
}

// Tf resolves a key and applies fmt args to the resolved template.
func Tf(locale, key string, args ...interface{}) string {
	tmpl := Translate(locale, key)
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
