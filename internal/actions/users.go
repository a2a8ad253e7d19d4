package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"winespace/internal/auth"
	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"

	"github.com/rs/zerolog/log"
)

type RegisterInput struct {
	Email       string     `json:"email" form:"email" binding:"required,email"`
	Password    string     `json:"password" form:"password" binding:"required,min=8"`
	Name        string     `json:"name" form:"name" binding:"required"`
	CompanyName string     `json:"companyName" form:"companyName" binding:"required"`
	Role        model.Role `json:"role" form:"role" binding:"required,oneof=producer supplier service_provider"`
	Phone       string     `json:"phone" form:"phone"`
	Region      string     `json:"region" form:"region"`
	Services    []string   `json:"services" form:"services"`
}

// Register creates an account. Producers can start at once; suppliers and
// service providers wait for an admin to approve them.
func (a *Actions) Register(ctx context.Context, in RegisterInput) (Result, error) {
	if !in.Role.IsValid() || in.Role == model.RoleAdmin {
		return Result{}, ierr.Invalidf("choose producer, supplier or service provider")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return Result{}, ierr.Invalidf(err.Error())
	}

	status := model.UserStatusPending
	if in.Role == model.RoleProducer {
		status = model.UserStatusActive
	}

	user, err := a.repos.Users.Create(ctx, model.User{
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		CompanyName:  strings.TrimSpace(in.CompanyName),
		Role:         in.Role,
		Status:       status,
		Phone:        in.Phone,
		Region:       in.Region,
		Services:     cleanList(in.Services),
	})
	if errors.Is(err, ierr.AlreadyExists) {
		return Result{}, fmt.Errorf("an account with this email %w", ierr.AlreadyExists)
	}
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Users)
	log.Info().Msgf("user %s registered as %s", user.Id, user.Role)

	msg := "Account created"
	if status == model.UserStatusPending {
		msg = "Account created, an administrator will review it shortly"
	}
	return ok(msg, user), nil
}

type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login checks the credentials and returns the user. Only active accounts may sign in.
func (a *Actions) Login(ctx context.Context, in LoginInput) (model.User, error) {
	user, err := a.repos.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ierr.NotFound) {
			return model.User{}, ierr.Unauthorized
		}
		return model.User{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return model.User{}, ierr.Unauthorized
	}

	if err := activeOnly(*user); err != nil {
		return model.User{}, err
	}
	return *user, nil
}

// Session reloads the signed-in user so a suspension or role change applies
// to tokens issued before it.
func (a *Actions) Session(ctx context.Context, userId string) (Actor, error) {
	user, err := a.repos.Users.GetById(ctx, userId)
	if errors.Is(err, ierr.NotFound) {
		return Actor{}, ierr.Unauthorized
	}
	if err != nil {
		return Actor{}, err
	}
	if err := activeOnly(*user); err != nil {
		return Actor{}, err
	}
	return Actor{Id: user.Id, Email: user.Email, Role: user.Role}, nil
}

func activeOnly(user model.User) error {
	switch user.Status {
	case model.UserStatusActive:
		return nil
	case model.UserStatusPending:
		return ierr.Forbiddenf("your account is awaiting approval")
	default:
		return ierr.Forbiddenf("your account is suspended")
	}
}

func (a *Actions) Me(ctx context.Context, actor Actor) (Result, error) {
	user, err := a.repos.Users.GetById(ctx, actor.Id)
	if err != nil {
		return Result{}, notFound(err, "user")
	}
	return ok("", user), nil
}

type ProfileInput struct {
	Name        *string  `json:"name" form:"name"`
	CompanyName *string  `json:"companyName" form:"companyName"`
	Phone       *string  `json:"phone" form:"phone"`
	Region      *string  `json:"region" form:"region"`
	Services    []string `json:"services" form:"services"`
}

func (a *Actions) UpdateProfile(ctx context.Context, actor Actor, in ProfileInput) (Result, error) {
	if actor.Id == "" {
		return Result{}, ierr.Unauthorized
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return Result{}, ierr.Invalidf("name cannot be empty")
	}

	update := model.UserUpdate{
		Name:        in.Name,
		CompanyName: in.CompanyName,
		Phone:       in.Phone,
		Region:      in.Region,
	}
	if in.Services != nil {
		if !actor.Is(model.RoleServiceProvider) {
			return Result{}, ierr.Forbiddenf("only service providers offer services")
		}
		update.Services = cleanList(in.Services)
	}

	if err := a.repos.Users.Update(ctx, actor.Id, update); err != nil {
		return Result{}, notFound(err, "user")
	}

	a.invalidate(ctx, pagecache.Users)
	return a.Me(ctx, actor)
}

func (a *Actions) ListUsers(ctx context.Context, actor Actor, role model.Role) (Result, error) {
	if err := actor.require(model.RoleAdmin); err != nil {
		return Result{}, err
	}
	if role != "" && !role.IsValid() {
		return Result{}, ierr.Invalidf("unknown role " + string(role))
	}

	users, err := a.repos.Users.List(ctx, role)
	if err != nil {
		return Result{}, err
	}
	return ok("", users), nil
}

func (a *Actions) SetUserStatus(ctx context.Context, actor Actor, userId string, status model.UserStatus) (Result, error) {
	if err := actor.require(model.RoleAdmin); err != nil {
		return Result{}, err
	}
	if !status.IsValid() {
		return Result{}, ierr.Invalidf("unknown status " + string(status))
	}
	if userId == actor.Id {
		return Result{}, ierr.Forbiddenf("you cannot change your own status")
	}

	user, err := a.repos.Users.GetById(ctx, userId)
	if err != nil {
		return Result{}, notFound(err, "user")
	}

	if err := a.repos.Users.SetStatus(ctx, userId, status); err != nil {
		return Result{}, notFound(err, "user")
	}

	a.invalidate(ctx, pagecache.Users)
	a.notifyEmail(ctx, model.NotifyUserStatus, user.Email, "", map[string]interface{}{
		"name":   user.Name,
		"status": string(status),
		"path":   "/login",
	})
	return ok("User is now "+string(status), nil), nil
}

type TierInput struct {
	Tier model.Tier `json:"tier" form:"tier" binding:"required"`
}

// SetCustomerTier records the pricing tier a supplier grants one producer.
func (a *Actions) SetCustomerTier(ctx context.Context, actor Actor, producerId string, tier model.Tier) (Result, error) {
	if err := actor.require(model.RoleSupplier); err != nil {
		return Result{}, err
	}
	if !tier.IsValid() {
		return Result{}, ierr.Invalidf("unknown tier " + string(tier))
	}

	producer, err := a.repos.Users.GetById(ctx, producerId)
	if err != nil {
		return Result{}, notFound(err, "producer")
	}
	if producer.Role != model.RoleProducer {
		return Result{}, ierr.Invalidf("tiers can only be given to producers")
	}

	if err := a.repos.Users.SetCustomerTier(ctx, actor.Id, producerId, tier); err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Products)
	return ok("Tier updated", map[string]string{"producerId": producerId, "tier": string(tier)}), nil
}

func cleanList(in []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			continue
		}
		seen[strings.ToLower(s)] = true
		out = append(out, s)
	}
	return out
}
