package routes

import (
	"net/http"

	"asha-backend/internal/handlers"
	"asha-backend/internal/middleware"
	"asha-backend/internal/models"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every endpoint on r. Global middleware is installed by the caller.
func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *utils.TokenManager) {
	role := func(roles ...models.Role) gin.HandlerFunc {
		return middleware.RequireRole(h.Identity, h.Logger, roles...)
	}
	auth := middleware.AuthMiddleware(tokens)

	r.GET("/ping", func(c *gin.Context) {
		utils.APIResponse(c, http.StatusOK, true, "Server OK!", nil)
	})

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", h.Login())

		// ASHA and supervisors
		asha := api.Group("/asha")
		{
			asha.POST("/register-supervisor", h.RegisterSupervisor)
			asha.POST("/login", h.AshaLogin())

			worker := asha.Group("/", auth)
			worker.POST("/register-asha", role(models.RoleSupervisor), h.RegisterAsha)
			worker.GET("/profile", role(models.RoleAsha, models.RoleSupervisor), h.GetAshaProfile)
			worker.PUT("/profile", role(models.RoleAsha, models.RoleSupervisor), h.UpdateAshaProfile)
			worker.POST("/profile/picture", role(models.RoleAsha, models.RoleSupervisor), h.UploadAshaPicture)
			worker.POST("/patient/register", role(models.RoleAsha), h.RegisterPatient)
			worker.GET("/patients", role(models.RoleAsha), h.GetAshaPatients)
		}

		lhv := api.Group("/lhv")
		{
			lhv.POST("/register", h.RegisterLHV)
			lhv.POST("/login", h.LHVLogin())
		}

		doctor := api.Group("/doctor")
		{
			doctor.POST("/register", h.RegisterDoctor)
			doctor.POST("/login", h.DoctorLogin())
			doctor.GET("/list", auth, h.ListDoctors)

			own := doctor.Group("/", auth, role(models.RoleDoctor))
			own.POST("/queue/add", h.AddToQueue)
			own.GET("/queue", h.GetQueue)
			own.PUT("/queue/emergency/:id", h.TagEmergency)
			own.POST("/queue/:id/start", h.StartConsultation)
			own.POST("/consultation-with-items", h.CompleteConsultation)
			own.GET("/patient/:id/history", h.GetPatientHistory)
			own.GET("/queries", h.GetDoctorQueries)
		}

		chemist := api.Group("/chemist")
		{
			chemist.POST("/register", h.RegisterChemist)
			chemist.POST("/login", h.ChemistLogin())

			own := chemist.Group("/inventory", auth, role(models.RoleChemist))
			own.GET("", h.GetInventory)
			own.PUT("", h.ReplaceInventory)
			own.POST("/medicine", h.AddMedicine)
		}

		// Notices and notifications
		notice := api.Group("/notice", auth)
		{
			notice.POST("/create-notice",
				role(models.RoleSupervisor, models.RoleLHV, models.RoleAsha, models.RoleGovt), h.CreateNotice)
			notice.POST("/forward/lhv-to-supervisors", role(models.RoleLHV), h.ForwardLHVToSupervisors())
			notice.POST("/forward/supervisor-to-village", role(models.RoleSupervisor), h.ForwardSupervisorToVillage())
			notice.POST("/forward/supervisor-to-asha", role(models.RoleSupervisor), h.ForwardSupervisorToAsha())
			notice.POST("/forward/asha-to-patients", role(models.RoleAsha), h.ForwardAshaToPatients())

			notice.GET("/notifications", role(), h.GetNotifications)
			notice.POST("/notifications/read/:id", role(), h.MarkNotificationRead)
			notice.POST("/save-token", role(), h.SaveToken)
		}

		patient := api.Group("/patient", auth, role(models.RolePatient))
		{
			patient.GET("/profile", h.GetPatientProfile)
			patient.GET("/family", h.GetPatientFamily)
			patient.GET("/consultations", h.GetPatientConsultations)
			patient.GET("/consultation-summary", h.GetConsultationSummary)
			patient.GET("/consultation/:id", h.GetPatientConsultation)
			patient.GET("/history", h.GetOwnHistory)
		}

		appointment := api.Group("/appointment", auth, role(models.RolePatient))
		{
			appointment.POST("", h.BookAppointment)
			appointment.GET("", h.ListAppointments)
		}

		survey := api.Group("/survey", auth)
		{
			survey.GET("/patient/:id", role(models.RoleAsha, models.RoleSupervisor), h.ListPatientSurveys)
			survey.GET("/supervisor/:type/:date", role(models.RoleSupervisor), h.ListTeamSurveys)
			survey.POST("/:type", role(models.RoleAsha), h.SaveSurvey)
			survey.GET("/:type", role(models.RoleAsha), h.ListSurveys)
		}

		api.POST("/query", auth, role(models.RoleAsha, models.RolePatient), h.RaiseQuery)
	}
}
