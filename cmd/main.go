package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	_ "time/tzdata"

	"github.com/boxyard/inventory-service/internal/app"
	"github.com/boxyard/inventory-service/internal/config"
	"github.com/boxyard/inventory-service/internal/controllers"
	"github.com/boxyard/inventory-service/internal/routes"
	"github.com/boxyard/inventory-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (DB pool, repositories, services)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize app")
	}
	defer application.Close()

	if cfg.Env == "dev" {
		if err := application.SeedDemoData(context.Background()); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed demo data")
		}
	}

	// 3) Controllers
	healthCtrl := controllers.NewHealthController(application)
	searchCtrl := controllers.NewSearchController(application.SearchService)
	invCtrl := controllers.NewInventoryController(application.InventoryService)

	// 4) Router
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.UnitsSearch, searchCtrl.SearchUnitsHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Units, invCtrl.CreateUnitHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Units, invCtrl.UpdateUnitHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.UnitByID, invCtrl.GetUnitHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.UnitByID, invCtrl.DeleteUnitHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.Depots, invCtrl.CreateDepotHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Depots, invCtrl.ListDepotsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DepotByID, invCtrl.GetDepotHandler).Methods(http.MethodGet)

	// 5) CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, c.Handler(router)); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}
