package routes

import (
	"net/http"

	"taskdesk/app/controllers"
	"taskdesk/app/fixtures"
	"taskdesk/app/middleware"
	"taskdesk/app/models"
	"taskdesk/app/services"

	"github.com/gorilla/mux"
)

// Controllers groups every handler the router exposes.
type Controllers struct {
	Tasks     *controllers.TaskController
	Contacts  *controllers.CRUDController[models.Contact, models.ContactPatch]
	Companies *controllers.CRUDController[models.Company, models.CompanyPatch]
	Deals     *controllers.CRUDController[models.Deal, models.DealPatch]
	Leads     *controllers.CRUDController[models.Lead, models.LeadPatch]
	CRM       *controllers.CRMController
}

// entity is the route set shared by every CRUD resource.
type entity interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, c Controllers) {
	router.HandleFunc("/healthz", controllers.Healthz).Methods(http.MethodGet)

	router.HandleFunc("/tasks", c.Tasks.GetTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", c.Tasks.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/counts", c.Tasks.GetCounts).Methods(http.MethodGet)
	router.HandleFunc("/tasks/stats", c.Tasks.GetStats).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id:[0-9]+}", c.Tasks.GetTaskByID).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id:[0-9]+}", c.Tasks.UpdateTask).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{id:[0-9]+}", c.Tasks.DeleteTask).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/{id:[0-9]+}/subtasks", c.Tasks.GetSubtasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id:[0-9]+}/progress", c.Tasks.GetProgress).Methods(http.MethodGet)
	router.HandleFunc("/categories", c.Tasks.GetCategories).Methods(http.MethodGet)

	router.HandleFunc("/deals/pipeline", c.CRM.Pipeline).Methods(http.MethodGet)
	router.HandleFunc("/deals/{id:[0-9]+}/activities", c.CRM.AddActivity).Methods(http.MethodPost)
	router.HandleFunc("/leads/stats", c.CRM.LeadStats).Methods(http.MethodGet)
	router.HandleFunc("/leads/{id:[0-9]+}/convert", c.CRM.ConvertLead).Methods(http.MethodPost)
	router.HandleFunc("/leads/{id:[0-9]+}/score", c.CRM.UpdateScore).Methods(http.MethodPut)
	router.HandleFunc("/crm/summary", c.CRM.Summary).Methods(http.MethodGet)

	registerEntity(router, "/contacts", c.Contacts)
	registerEntity(router, "/companies", c.Companies)
	registerEntity(router, "/deals", c.Deals)
	registerEntity(router, "/leads", c.Leads)
}

func registerEntity(router *mux.Router, prefix string, e entity) {
	router.HandleFunc(prefix, e.List).Methods(http.MethodGet)
	router.HandleFunc(prefix, e.Create).Methods(http.MethodPost)
	router.HandleFunc(prefix+"/{id:[0-9]+}", e.Get).Methods(http.MethodGet)
	router.HandleFunc(prefix+"/{id:[0-9]+}", e.Update).Methods(http.MethodPut)
	router.HandleFunc(prefix+"/{id:[0-9]+}", e.Delete).Methods(http.MethodDelete)
}

// New builds every service from the seed set and returns a router with the
// request logging middleware installed.
func New(seed fixtures.Set, recurrence services.Recurrence, opts services.Options) *mux.Router {
	tasks := services.NewTaskService(seed.Tasks, recurrence, opts)
	categories := services.NewCategoryService(seed.Categories, opts)
	contacts := services.NewContactService(seed.Contacts, opts)
	companies := services.NewCompanyService(seed.Companies, opts)
	deals := services.NewDealService(seed.Deals, opts)
	leads := services.NewLeadService(seed.Leads, opts)

	c := Controllers{
		Tasks:     controllers.NewTaskController(tasks, categories),
		Contacts:  controllers.NewCRUDController[models.Contact, models.ContactPatch](contacts),
		Companies: controllers.NewCRUDController[models.Company, models.CompanyPatch](companies),
		Deals:     controllers.NewCRUDController[models.Deal, models.DealPatch](deals),
		Leads:     controllers.NewCRUDController[models.Lead, models.LeadPatch](leads),
		CRM: &controllers.CRMController{
			Contacts: contacts,
			Deals:    deals,
			Leads:    leads,
			Dashboard: &services.Dashboard{
				Contacts:  contacts,
				Companies: companies,
				Deals:     deals,
				Leads:     leads,
			},
		},
	}
	if opts.Now != nil {
		c.Tasks.Now = opts.Now
	}

	router := mux.NewRouter()
	if opts.Log != nil {
		router.Use(middleware.Logging(opts.Log))
	}
	RegisterRoutes(router, c)
	return router
}
