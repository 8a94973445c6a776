package unit_test

import (
	"testing"

	"shakwa-backend/internal/pkg/i18n"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Run("Built-in Fallback", func(t *testing.T) {
		msg := i18n.Translate("xx", "complaint.received")
		assert.Equal(t, "Your complaint has been received and is under review.", msg)
	})

	t.Run("Unknown Key Returns Key", func(t *testing.T) {
		assert.Equal(t, "no.such.key", i18n.Translate("en", "no.such.key"))
	})

	t.Run("Template Args Applied", func(t *testing.T) {
		msg := i18n.Tf("en", "complaint.status_changed", "resolved")
		assert.Equal(t, "Complaint status changed to resolved", msg)
	})

	t.Run("Image Count Interpolated", func(t *testing.T) {
		msg := i18n.Tf("en", "complaint.images_added", 3)
		assert.Equal(t, "3 new images were added to the complaint", msg)
	})
}
