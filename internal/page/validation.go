package page

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jrnavarro/coursetrack-client/internal/mirror"
	"github.com/jrnavarro/coursetrack-client/internal/models"
)

// newValidator returns a validator with the enum tags the drafts use.
// Field names in messages come from the json tags so notifications read
// like the form labels.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("subject_category", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(models.SubjectCategory(fl.Field().String()))
	})
	_ = v.RegisterValidation("subject_status", func(fl validator.FieldLevel) bool {
		return models.ValidSubjectStatus(models.SubjectStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("subject_priority", func(fl validator.FieldLevel) bool {
		return models.ValidPriority(models.SubjectPriority(fl.Field().String()))
	})
	_ = v.RegisterValidation("project_status", func(fl validator.FieldLevel) bool {
		return models.ValidProjectStatus(models.ProjectStatus(fl.Field().String()))
	})
	return v
}

// validationMessage turns the first field error into the user-facing
// notification text, e.g. "Please enter a title.".
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if ok := asValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		name := strings.ToLower(fe.Field())
		name = strings.ReplaceAll(name, "_", " ")
		if fe.Tag() == "required" {
			return fmt.Sprintf("Please enter a %s.", name)
		}
		return fmt.Sprintf("Invalid value for %s.", name)
	}
	return "Please fill in all required fields."
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		*target = fieldErrs
		return true
	}
	return false
}

// MutationObserver records mutation dispatch outcomes; backed by the
// Prometheus service in the gateway, nil in tests.
type MutationObserver interface {
	ObserveMutation(resource, operation string, err error, duration time.Duration)
}

func observe(obs MutationObserver, resource, operation string, err error, start time.Time) {
	if obs == nil {
		return
	}
	obs.ObserveMutation(resource, operation, err, time.Since(start))
}

// observerOrNil reuses the mutation observer for poll metrics when the
// concrete implementation records both.
func observerOrNil(obs MutationObserver) mirror.Observer {
	if m, ok := obs.(mirror.Observer); ok {
		return m
	}
	return nil
}
