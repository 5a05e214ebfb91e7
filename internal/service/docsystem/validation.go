package docsystem

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"branchwrite/internal/domain"
	models "branchwrite/internal/domain/models/docsystem"
	"branchwrite/internal/utils"
)

var (
	// entityIDRule rejects ids that are unsafe as directory names
	entityIDRule = validation.By(func(value interface{}) error {
		id, ok := value.(string)
		if !ok {
			return fmt.Errorf("id must be a string")
		}
		return utils.ValidateEntityID(id)
	})

	// notBlankRule rejects strings that are empty after trimming
	notBlankRule = validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a string")
		}
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("cannot be empty")
		}
		return nil
	})

	docTypes = []interface{}{
		models.DocTypeChapter,
		models.DocTypeSection,
		models.DocTypeNote,
	}

	docStatuses = []interface{}{
		models.StatusDraft,
		models.StatusReview,
		models.StatusFinal,
	}
)

// validateID validates an entity id supplied by the caller
func validateID(kind, id string) error {
	if err := validation.Validate(id, validation.Required, entityIDRule); err != nil {
		return fmt.Errorf("%w: %s id: %v", domain.ErrValidation, kind, err)
	}
	return nil
}

// validateIDs validates a list of kind/id pairs, stopping at the first failure
func validateIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := validateID(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
