// Command verifytoken prints a fresh email verification link for an account,
// optionally mailing it through the configured backend.
//
// The account is read from database.driver. With the memory driver the store
// starts empty, so every lookup reports that the user is not found.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tiktok/config"
	"tiktok/internal/domain/lifecycle"
	"tiktok/internal/domain/repository"
	"tiktok/internal/domain/service"
	"tiktok/internal/infra/auth"
	logs "tiktok/internal/infra/log"
	"tiktok/internal/infra/mail"
	"tiktok/internal/infra/persistence"
	"tiktok/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type runParams struct {
	fx.In

	Config   *config.Config
	UserRepo repository.UserRepository
	Codec    service.VerificationCodec
	Sender   service.MailSender
}

func main() {
	userID := flag.Int64("user-id", 0, "ID of the account to verify")
	send := flag.Bool("send", false, "Mail the link through email.backend instead of only printing it")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -user-id ID [-send]\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Needs a persistent database.driver; the memory driver holds no users.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *userID <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	var params runParams
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			persistence.New,
			auth.NewVerificationCodec,
			mail.NewSender,
		),
		fx.Populate(&params),
	)

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := run(ctx, params, *userID, *send)

	if err := app.Stop(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func run(ctx context.Context, params runParams, userID int64, send bool) error {
	user, err := params.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) && params.Config.Database.Driver == config.DriverMemory {
			return errors.Wrapf(err, "user %d not found: database.driver is memory, which holds no users", userID)
		}

		return errors.Wrapf(err, "failed to load user %d", userID)
	}
	if user.IsActive {
		fmt.Printf("User %d (%s) is already verified\n", user.ID, user.Email)

		return nil
	}

	token, err := params.Codec.Issue(user)
	if err != nil {
		return errors.Wrap(err, "failed to issue verification token")
	}

	link, err := usecase.VerificationLink(params.Config.Email.VerificationURL, token)
	if err != nil {
		return errors.Wrap(err, "invalid email.verificationURL")
	}

	fmt.Println(link)

	if !send {
		return nil
	}

	msg := usecase.NewVerificationMail(params.Config.Email.DefaultFrom, user.Email, link)

	return errors.Wrap(params.Sender.Send(ctx, msg), "failed to send verification email")
}
