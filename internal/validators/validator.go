package validators

import (
	"net/http"
	"strings"

	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts validator/v10 to echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// New returns a validator that also understands the mood and language tags.
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return models.IsMood(strings.ToLower(fl.Field().String()))
	})
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return models.IsLanguage(strings.ToLower(fl.Field().String()))
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, describe(err))
	}
	return nil
}

// describe turns validation errors into one readable sentence.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "url":
			msgs = append(msgs, field+" must be a valid URL")
		case "min":
			msgs = append(msgs, field+" must be at least "+fe.Param()+" characters")
		case "max":
			msgs = append(msgs, field+" must be at most "+fe.Param()+" characters")
		case "mood":
			msgs = append(msgs, "mood must be one of "+strings.Join(models.Moods, ", "))
		case "language":
			msgs = append(msgs, "language must be one of "+strings.Join(models.Languages, ", "))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
