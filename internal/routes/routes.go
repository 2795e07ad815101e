package routes

import (
	"clinic-management-server/internal/config"
	"clinic-management-server/internal/handlers"
	"clinic-management-server/internal/middleware"
	"clinic-management-server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	visitHandler := handlers.NewVisitHandler(db)
	triageHandler := handlers.NewTriageHandler(db)
	consultationHandler := handlers.NewConsultationHandler(db, cfg)
	testTypeHandler := handlers.NewTestTypeHandler(db)
	testRequestHandler := handlers.NewTestRequestHandler(db)
	medicineHandler := handlers.NewMedicineHandler(db)
	prescriptionHandler := handlers.NewPrescriptionHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db)
	otcSaleHandler := handlers.NewOTCSaleHandler(db)
	expenseHandler := handlers.NewPharmacyExpenseHandler(db)

	// Public routes (no session required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.SessionAuthMiddleware(cfg))
	{
		authRoutes := private.Group("/auth")
		{
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/session", authHandler.GetSession)
		}

		// Staff management (admin-only)
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PATCH("/:id", userHandler.UpdateUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
		}

		// Patient registration
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin), patientHandler.CreatePatient)
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PATCH("/:id", middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin), patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), patientHandler.DeletePatient)
		}

		// Visit tracking
		visitRoutes := private.Group("/visits")
		{
			visitRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin), visitHandler.CreateVisit)
			visitRoutes.GET("", visitHandler.GetVisits)
			visitRoutes.GET("/:id", visitHandler.GetVisitByID)
			visitRoutes.PATCH("/:id", visitHandler.UpdateVisit)
			visitRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), visitHandler.DeleteVisit)
		}

		// Triage
		triageRoutes := private.Group("/triage_records")
		{
			triageRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleNurse), triageHandler.CreateTriage)
			triageRoutes.GET("", triageHandler.GetTriageRecords)
			triageRoutes.GET("/:id", triageHandler.GetTriageByID)
			triageRoutes.PATCH("/:id", middleware.RoleAuthMiddleware(models.RoleNurse), triageHandler.UpdateTriage)
			triageRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleNurse, models.RoleAdmin), triageHandler.DeleteTriage)
		}

		// Consultations
		consultationRoutes := private.Group("/consultations")
		{
			consultationRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), consultationHandler.CreateConsultation)
			consultationRoutes.GET("", consultationHandler.GetConsultations)
			consultationRoutes.GET("/:id", consultationHandler.GetConsultationByID)
			consultationRoutes.PATCH("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor), consultationHandler.UpdateConsultation)
			consultationRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), consultationHandler.DeleteConsultation)
		}

		// Price list
		testTypeRoutes := private.Group("/test_types")
		{
			testTypeRoutes.GET("", testTypeHandler.GetTestTypes)
			testTypeRoutes.GET("/:id", testTypeHandler.GetTestTypeByID)

			adminTestTypes := testTypeRoutes.Group("")
			adminTestTypes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminTestTypes.POST("", testTypeHandler.CreateTestType)
				adminTestTypes.PATCH("/:id", testTypeHandler.UpdateTestType)
				adminTestTypes.DELETE("/:id", testTypeHandler.DeleteTestType)
			}
		}

		// Lab and imaging orders
		testRequestRoutes := private.Group("/test_requests")
		{
			testRequestRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleLabTech, models.RoleImagingTech), testRequestHandler.CreateTestRequest)
			testRequestRoutes.GET("", testRequestHandler.GetTestRequests)
			testRequestRoutes.GET("/:id", testRequestHandler.GetTestRequestByID)
			testRequestRoutes.PATCH("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleLabTech, models.RoleImagingTech), testRequestHandler.UpdateTestRequest)
			testRequestRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), testRequestHandler.DeleteTestRequest)
		}

		// Formulary and inventory
		medicineRoutes := private.Group("/medicines")
		{
			medicineRoutes.GET("", medicineHandler.GetMedicines)
			medicineRoutes.GET("/:id", medicineHandler.GetMedicineByID)

			pharmacyMedicines := medicineRoutes.Group("")
			pharmacyMedicines.Use(middleware.RoleAuthMiddleware(models.RolePharmacist, models.RoleAdmin))
			{
				pharmacyMedicines.POST("", medicineHandler.CreateMedicine)
				pharmacyMedicines.PATCH("/:id", medicineHandler.UpdateMedicine)
				pharmacyMedicines.DELETE("/:id", medicineHandler.DeleteMedicine)
			}
		}

		// Prescriptions
		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RolePharmacist), prescriptionHandler.CreatePrescription)
			prescriptionRoutes.GET("", prescriptionHandler.GetPrescriptions)
			prescriptionRoutes.GET("/:id", prescriptionHandler.GetPrescriptionByID)
			prescriptionRoutes.PATCH("/:id", middleware.RoleAuthMiddleware(models.RolePharmacist, models.RoleDoctor), prescriptionHandler.UpdatePrescription)
			prescriptionRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RolePharmacist, models.RoleAdmin), prescriptionHandler.DeletePrescription)
		}

		// Payments
		paymentRoutes := private.Group("/payments")
		{
			paymentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleReceptionist), paymentHandler.CreatePayment)
			paymentRoutes.GET("", paymentHandler.GetPayments)
			paymentRoutes.GET("/:id", paymentHandler.GetPaymentByID)
			paymentRoutes.PATCH("/:id", middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin), paymentHandler.UpdatePayment)
			paymentRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), paymentHandler.DeletePayment)
		}

		// Walk-in pharmacy sales
		otcRoutes := private.Group("/otc_sales")
		{
			otcRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RolePharmacist), otcSaleHandler.CreateOTCSale)
			otcRoutes.GET("", otcSaleHandler.GetOTCSales)
			otcRoutes.GET("/:id", otcSaleHandler.GetOTCSaleByID)
			otcRoutes.PATCH("/:id", otcSaleHandler.UpdateOTCSale)
			otcRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RolePharmacist, models.RoleAdmin), otcSaleHandler.DeleteOTCSale)

			otcRoutes.POST("/:id/sales", middleware.RoleAuthMiddleware(models.RolePharmacist), otcSaleHandler.CreatePharmacySale)
			otcRoutes.DELETE("/:id/sales/:saleId", middleware.RoleAuthMiddleware(models.RolePharmacist, models.RoleAdmin), otcSaleHandler.DeletePharmacySale)
		}

		// Restocks
		expenseRoutes := private.Group("/pharmacy_expenses")
		expenseRoutes.Use(middleware.RoleAuthMiddleware(models.RolePharmacist, models.RoleAdmin))
		{
			expenseRoutes.POST("", expenseHandler.CreatePharmacyExpense)
			expenseRoutes.GET("", expenseHandler.GetPharmacyExpenses)
			expenseRoutes.GET("/:id", expenseHandler.GetPharmacyExpenseByID)
			expenseRoutes.DELETE("/:id", expenseHandler.DeletePharmacyExpense)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
