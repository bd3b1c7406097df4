package controllers_fx

import (
	"go.uber.org/fx"

	"tripflow/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewPOIController),
	fx.Provide(controllers.NewAccommodationController),
	fx.Provide(controllers.NewScheduleController),
	fx.Provide(controllers.NewSuggestController))
