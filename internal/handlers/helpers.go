package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"ecommerce-platform/internal/middleware"
	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/services"
	"ecommerce-platform/internal/utils"
)

// maxBodySize bounds JSON request bodies
const maxBodySize = 1 << 20

// maxUploadSize bounds multipart forms; images themselves are checked by the image service
const maxUploadSize = 8 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return lowerFirst(field.Name)
		}
		return name
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return utils.IsStrongPassword(fl.Field().String())
	})
	return v
}

// message is the {"msg": ...} body of informational responses
type message struct {
	Msg string `json:"msg"`
}

// empty renders as {}
var empty = struct{}{}

// decode reads a JSON body into dst and validates it
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return models.BadRequest("Invalid request body")
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return models.BadRequest("%s", validationMessage(fieldErrs[0]))
	}
	return models.BadRequest("Invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid":
		return field + " must be a valid id"
	case "numeric":
		return field + " must contain only digits"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "strongpassword":
		return "Please provide strong password"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// pathID parses the {id} URL parameter
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, models.BadRequest("Invalid id %s", raw)
	}
	return id, nil
}

// queryPage returns the 1-based page query parameter
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// querySort maps "latest"/"oldest" to a creation-time direction
func querySort(r *http.Request) models.SortDirection {
	if r.URL.Query().Get("sort") == "oldest" {
		return models.SortAsc
	}
	return models.SortDesc
}

// rankDirection maps "highest"/"lowest" to a direction, nil for anything else
func rankDirection(value string) *models.SortDirection {
	var dir models.SortDirection
	switch value {
	case "highest":
		dir = models.SortDesc
	case "lowest":
		dir = models.SortAsc
	default:
		return nil
	}
	return &dir
}

// statusFlag maps "1"/"0" to true/false, nil for anything else
func statusFlag(value string) *bool {
	switch value {
	case "1":
		return lo.ToPtr(true)
	case "0":
		return lo.ToPtr(false)
	default:
		return nil
	}
}

// currentActor returns the actor attached by the auth middleware
func currentActor(r *http.Request) models.Actor {
	actor, _ := middleware.ActorFromContext(r.Context())
	return actor
}

// viewerID returns the signed-in user's id on optionally authenticated routes
func viewerID(r *http.Request) *uuid.UUID {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return nil
	}
	return &actor.UserID
}

// formImage returns the "image" file of a multipart form, nil when absent.
// The caller closes the returned file.
func formImage(r *http.Request) (*services.ImageFile, io.Closer, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, models.BadRequest("Invalid image upload")
	}
	return &services.ImageFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, file, nil
}

// parseMultipart reads a multipart body, bounded by maxUploadSize
func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return models.BadRequest("Invalid multipart form")
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
