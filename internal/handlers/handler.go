package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"asha-backend/internal/middleware"
	"asha-backend/internal/services"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Validation messages name fields by their json key.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	}
}

// Handler holds the services every route needs.
type Handler struct {
	Auth          *services.AuthService
	Identity      *services.IdentityService
	Profiles      *services.ProfileService
	Fanout        *services.FanoutService
	Notifications *services.NotificationService
	Queue         *services.QueueService
	Appointments  *services.AppointmentService
	Records       *services.RecordService
	Surveys       *services.SurveyService
	Inventory     *services.InventoryService
	Logger        zerolog.Logger
}

func (h *Handler) respondError(c *gin.Context, err error) {
	utils.RespondError(c, h.Logger, err)
}

// bind decodes the JSON body into input, answering 400 on failure.
func (h *Handler) bind(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		h.respondError(c, utils.ValidationError(bindMessage(err)))
		return false
	}
	return true
}

// bindMessage turns validator output into "field is required" style text.
func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "min", "max", "len":
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must match %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// actor returns the caller resolved by RequireRole.
func (h *Handler) actor(c *gin.Context) (services.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		h.respondError(c, utils.AuthError("No token provided"))
	}
	return actor, ok
}

// paramID reads a positive numeric path parameter.
func (h *Handler) paramID(c *gin.Context, name string) (uint64, bool) {
	id := utils.StringToUint64(c.Param(name))
	if id == 0 {
		h.respondError(c, utils.ValidationError("Invalid "+name))
		return 0, false
	}
	return id, true
}
