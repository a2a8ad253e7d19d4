package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"winespace/internal/actions"
	"winespace/internal/api"
	"winespace/internal/auth"
	"winespace/internal/config"
	"winespace/internal/database"
	"winespace/internal/fetcher"
	"winespace/internal/handler/catalogimport"
	notificationHandler "winespace/internal/handler/notification"
	"winespace/internal/mailer"
	"winespace/internal/pagecache"
	availabilityRepository "winespace/internal/repository/availability"
	bookingRepository "winespace/internal/repository/booking"
	bulkWineRepository "winespace/internal/repository/bulkwine"
	notificationRepository "winespace/internal/repository/notification"
	offenderRepository "winespace/internal/repository/offender"
	orderRepository "winespace/internal/repository/order"
	productRepository "winespace/internal/repository/product"
	promotionRepository "winespace/internal/repository/promotion"
	quoteRepository "winespace/internal/repository/quote"
	rfqRepository "winespace/internal/repository/rfq"
	sawisRepository "winespace/internal/repository/sawis"
	userRepository "winespace/internal/repository/user"
	"winespace/internal/utils"

	gpt "winespace/internal/gpt"
	gptutils "winespace/internal/gpt/utils"

	Firestore "firebase.google.com/go/v4"

	notificationEventPublisher "winespace/internal/eventpublisher/notification"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

func main() {

	cnf := config.LoadConfigOrPanic()
	setupLogger(cnf.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := createFirestoreAppOrPanic(ctx, cnf.Firebase)
	firestoreClient := createFirestoreClientOrPanic(ctx, app, cnf.WriteTimeoutSecond)
	defer firestoreClient.Close()

	tokenizer, err := gptutils.NewTokenzier()
	if err != nil {
		panic(err)
	}

	gptFactory, err := gpt.NewClientFactory(gpt.ClientConfig{
		ApiUrl:      cnf.GilasAI.ApiUrl,
		ApiKey:      cnf.GilasAI.ApiKey,
		Model:       cnf.GilasAI.Model,
		Temperature: utils.Float32ToPointer(0.1),
	})
	if err != nil {
		panic(err)
	}

	pageFetcher, err := fetcher.New(cnf.Scraper)
	if err != nil {
		panic(err)
	}

	mail, err := mailer.New(ctx, cnf.Mail)
	if err != nil {
		panic(err)
	}
	renderer, err := mailer.NewRenderer(cnf.BaseURL)
	if err != nil {
		panic(err)
	}

	notificationRepo := notificationRepository.New(&firestoreClient)
	repos := actions.Repositories{
		Users:         userRepository.New(&firestoreClient),
		Products:      productRepository.New(&firestoreClient),
		Orders:        orderRepository.New(&firestoreClient),
		Availability:  availabilityRepository.New(&firestoreClient),
		Bookings:      bookingRepository.New(&firestoreClient),
		Promotions:    promotionRepository.New(&firestoreClient),
		Sawis:         sawisRepository.New(&firestoreClient),
		Offenders:     offenderRepository.New(&firestoreClient),
		BulkWine:      bulkWineRepository.New(&firestoreClient),
		RFQs:          rfqRepository.New(&firestoreClient),
		Quotes:        quoteRepository.New(&firestoreClient),
		Notifications: notificationRepo,
	}

	marketplace := actions.New(repos, pagecache.New(cnf.Redis),
		actions.WithCatalogImport(catalogimport.New(gptFactory, pageFetcher, tokenizer, cnf.Scraper.MaxTokens)),
		actions.WithOrderParser(gptFactory),
	)

	pendingPublisher := notificationEventPublisher.NotificationPublisherFactory(notificationRepo).OnPendingNotification()
	nh := notificationHandler.New(pendingPublisher, notificationRepo, renderer, mail)

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              cnf.HTTP.Addr,
		Handler:           api.New(marketplace, auth.NewTokenIssuer(cnf.JWTSecret, cnf.TokenTTL), cnf.HTTP).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return nh.EventHandler(gctx)
	})
	group.Go(func() error {
		return pendingPublisher.Start(gctx)
	})
	group.Go(func() error {
		log.Info().Msgf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutting down")
		os.Exit(1)
	}
}

func setupLogger(cnf config.Log) {
	level, err := zerolog.ParseLevel(cnf.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cnf.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func createFirestoreAppOrPanic(ctx context.Context, cnf config.Firebase) *Firestore.App {
	FirestoreCreds, err := json.Marshal(cnf)
	if err != nil {
		panic(err)
	}

	sa := option.WithCredentialsJSON(FirestoreCreds)
	app, err := Firestore.NewApp(ctx, nil, sa)
	if err != nil {
		panic(err)
	}
	return app
}

func createFirestoreClientOrPanic(ctx context.Context, app *Firestore.App, writeTimeout time.Duration) database.FirestoreClient {
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		panic(err)
	}
	return database.New(firestoreClient, writeTimeout)
}
