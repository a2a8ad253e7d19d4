// Command client is an operator tool: it creates the first admin account and
// seeds a supplier's catalogue from a JSON file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"winespace/internal/actions"
	"winespace/internal/auth"
	"winespace/internal/config"
	"winespace/internal/database"
	ierr "winespace/internal/errors"
	"winespace/internal/handler/catalogimport"
	"winespace/internal/model"
	"winespace/internal/pagecache"
	productRepository "winespace/internal/repository/product"
	userRepository "winespace/internal/repository/user"

	Firestore "firebase.google.com/go/v4"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

func main() {
	adminEmail := flag.String("admin-email", "", "create an admin account with this email")
	adminName := flag.String("admin-name", "Administrator", "name of the admin account")
	seedFile := flag.String("seed", "", "JSON file with the products to add")
	supplierId := flag.String("supplier", "", "supplier that owns the seeded products")
	exportId := flag.String("export", "", "write this product to <id>.json")
	flag.Parse()

	cnf := config.LoadOperatorConfigOrPanic()
	if level, err := zerolog.ParseLevel(cnf.Log.Level); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := createFirestoreAppOrPanic(ctx, cnf.Firebase)
	firestoreClient := createFirestoreClientOrPanic(ctx, app, cnf.WriteTimeoutSecond)
	defer firestoreClient.Close()

	userRepo := userRepository.New(&firestoreClient)
	productRepo := productRepository.New(&firestoreClient)

	var err error
	switch {
	case *adminEmail != "":
		err = createAdmin(ctx, userRepo, *adminEmail, *adminName, os.Getenv("ADMIN_PASSWORD"))
	case *seedFile != "":
		a := actions.New(actions.Repositories{Users: userRepo, Products: productRepo}, pagecache.New(cnf.Redis))
		err = seedProducts(ctx, a, userRepo, *supplierId, *seedFile)
	case *exportId != "":
		err = exportProduct(ctx, productRepo, *exportId)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error().Err(err).Msg("client failed")
		os.Exit(1)
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

// createAdmin reads the password from ADMIN_PASSWORD so it stays out of the shell history.
func createAdmin(ctx context.Context, users userRepository.IRepository, email, name, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("ADMIN_PASSWORD must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	u, err := users.Create(ctx, model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CompanyName:  name,
		Role:         model.RoleAdmin,
		Status:       model.UserStatusActive,
	})
	if errors.Is(err, ierr.AlreadyExists) {
		return fmt.Errorf("%s is already registered", email)
	}
	if err != nil {
		return err
	}

	log.Info().Msgf("admin %s created, id: %s", u.Email, u.Id)
	return nil
}

// seedProducts reads the same product shape the catalogue import produces.
func seedProducts(ctx context.Context, a *actions.Actions, users userRepository.IRepository, supplierId, filePath string) error {
	if supplierId == "" {
		return fmt.Errorf("-supplier is required with -seed")
	}
	supplier, err := users.GetById(ctx, supplierId)
	if err != nil {
		return fmt.Errorf("get supplier: %w, id: %s", err, supplierId)
	}
	if supplier.Role != model.RoleSupplier {
		return fmt.Errorf("user %s is a %s, not a supplier", supplierId, supplier.Role)
	}

	byteValue, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var products []catalogimport.Product
	if err := json.Unmarshal(byteValue, &products); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	res, err := a.SaveImportedProducts(ctx, actions.Actor{Id: supplier.Id, Email: supplier.Email, Role: supplier.Role}, products)
	if err != nil {
		return err
	}

	log.Info().Msg(res.Message)
	return nil
}

func exportProduct(ctx context.Context, products productRepository.IRepository, productId string) error {
	p, err := products.GetById(ctx, productId)
	if err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(*p, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(fmt.Sprintf("%s.json", productId), jsonData, 0o644)
}
