package main

import (
	"context"
	"log/slog"
	"os"

	"tiktok/config"
	"tiktok/internal/delivery"
	"tiktok/internal/delivery/api"
	"tiktok/internal/delivery/api/middleware"
	"tiktok/internal/delivery/api/router/handler"
	"tiktok/internal/domain/service"
	"tiktok/internal/infra/auth"
	logs "tiktok/internal/infra/log"
	"tiktok/internal/infra/mail"
	"tiktok/internal/infra/persistence"
	"tiktok/internal/infra/pubsub"
	"tiktok/internal/infra/qrcode"
	"tiktok/internal/infra/validator"
	"tiktok/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			mail.NewSender,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		persistence.New,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewVerificationCodec,
			qrcode.New,
			newInputValidator,
			impl.NewCredentialAuthenticator,
			impl.NewTokenAuthorizer,
		),
	)
}

func newInputValidator() service.InputValidator {
	return validator.New()
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewProfileService,
			impl.NewSessionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewProfileHandler,
			handler.NewSessionHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
