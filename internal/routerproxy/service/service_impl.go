package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-routeros/routeros/v3"
	"github.com/wisphub/netdesk/internal/cache"
	routerdomain "github.com/wisphub/netdesk/internal/routerproxy/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	dialTimeout     = 10 * time.Second
	profileCacheTTL = 30 * time.Second
)

type Service struct {
	log *zap.Logger

	// Profiles change rarely; cache them per device so the dashboard's
	// repeated dropdown loads don't hammer the router.
	profileCache *cache.TTLCache[string, []routerdomain.Profile]
}

type ServiceParam struct {
	fx.In

	Log *zap.Logger
}

func NewService(p ServiceParam) routerdomain.Service {
	return &Service{
		log:          p.Log.Named("routerproxy.service"),
		profileCache: cache.NewTTLCache[string, []routerdomain.Profile](),
	}
}

func (s *Service) Ping(ctx context.Context, creds routerdomain.Credentials) error {
	client, err := s.dial(creds)
	if err != nil {
		return err
	}
	defer client.Close()

	_, err = client.Run("/system/identity/print")
	if err != nil {
		return routerdomain.ErrRouterUnreachable
	}
	return nil
}

func (s *Service) ListSecrets(ctx context.Context, creds routerdomain.Credentials) ([]routerdomain.Secret, error) {
	client, err := s.dial(creds)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	reply, err := client.Run("/ppp/secret/print")
	if err != nil {
		return nil, routerdomain.ErrRouterUnreachable
	}

	secrets := make([]routerdomain.Secret, 0, len(reply.Re))
	for _, re := range reply.Re {
		secrets = append(secrets, routerdomain.Secret{
			ID:       re.Map[".id"],
			Name:     re.Map["name"],
			Service:  re.Map["service"],
			Profile:  re.Map["profile"],
			Comment:  re.Map["comment"],
			Disabled: re.Map["disabled"] == "true",
		})
	}
	return secrets, nil
}

func (s *Service) AddSecret(ctx context.Context, creds routerdomain.Credentials, req routerdomain.AddSecretRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return routerdomain.ErrSecretNameMissing
	}
	service := req.Service
	if service == "" {
		service = "pppoe"
	}

	client, err := s.dial(creds)
	if err != nil {
		return err
	}
	defer client.Close()

	args := []string{
		"/ppp/secret/add",
		"=name=" + name,
		"=password=" + req.Password,
		"=service=" + service,
	}
	if req.Profile != "" {
		args = append(args, "=profile="+req.Profile)
	}
	if req.Comment != "" {
		args = append(args, "=comment="+req.Comment)
	}

	if _, err := client.Run(args...); err != nil {
		return fmt.Errorf("add secret: %w", err)
	}

	s.log.Info("router secret added",
		zap.String("device", creds.Address),
		zap.String("name", name),
	)
	return nil
}

func (s *Service) RemoveSecret(ctx context.Context, creds routerdomain.Credentials, name string) error {
	client, err := s.dial(creds)
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := findSecretID(client, name)
	if err != nil {
		return err
	}

	if _, err := client.Run("/ppp/secret/remove", "=.id="+id); err != nil {
		return fmt.Errorf("remove secret: %w", err)
	}

	s.log.Info("router secret removed",
		zap.String("device", creds.Address),
		zap.String("name", name),
	)
	return nil
}

func (s *Service) SetSecretDisabled(ctx context.Context, creds routerdomain.Credentials, name string, disabled bool) error {
	client, err := s.dial(creds)
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := findSecretID(client, name)
	if err != nil {
		return err
	}

	value := "no"
	if disabled {
		value = "yes"
	}
	if _, err := client.Run("/ppp/secret/set", "=.id="+id, "=disabled="+value); err != nil {
		return fmt.Errorf("toggle secret: %w", err)
	}
	return nil
}

func (s *Service) DisconnectActive(ctx context.Context, creds routerdomain.Credentials, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return routerdomain.ErrSecretNameMissing
	}

	client, err := s.dial(creds)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.Run("/ppp/active/print", "?name="+name)
	if err != nil {
		return routerdomain.ErrRouterUnreachable
	}
	if len(reply.Re) == 0 {
		return routerdomain.ErrSessionNotFound
	}

	if _, err := client.Run("/ppp/active/remove", "=.id="+reply.Re[0].Map[".id"]); err != nil {
		return fmt.Errorf("disconnect session: %w", err)
	}
	return nil
}

func (s *Service) ListProfiles(ctx context.Context, creds routerdomain.Credentials) ([]routerdomain.Profile, error) {
	if profiles, ok := s.profileCache.Get(creds.Address); ok {
		return profiles, nil
	}

	client, err := s.dial(creds)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	reply, err := client.Run("/ppp/profile/print")
	if err != nil {
		return nil, routerdomain.ErrRouterUnreachable
	}

	profiles := make([]routerdomain.Profile, 0, len(reply.Re))
	for _, re := range reply.Re {
		profiles = append(profiles, routerdomain.Profile{
			Name:          re.Map["name"],
			LocalAddress:  re.Map["local-address"],
			RemoteAddress: re.Map["remote-address"],
			RateLimit:     re.Map["rate-limit"],
		})
	}

	s.profileCache.Set(creds.Address, profiles, profileCacheTTL)
	return profiles, nil
}

func (s *Service) dial(creds routerdomain.Credentials) (*routeros.Client, error) {
	if creds.Address == "" || creds.Username == "" {
		return nil, routerdomain.ErrMissingCredentials
	}

	client, err := routeros.DialTimeout(creds.Address, creds.Username, creds.Password, dialTimeout)
	if err != nil {
		s.log.Warn("router dial failed",
			zap.String("device", creds.Address),
			zap.Error(err),
		)
		return nil, routerdomain.ErrRouterUnreachable
	}
	return client, nil
}

func findSecretID(client *routeros.Client, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", routerdomain.ErrSecretNameMissing
	}

	reply, err := client.Run("/ppp/secret/print", "?name="+name)
	if err != nil {
		return "", routerdomain.ErrRouterUnreachable
	}
	if len(reply.Re) == 0 {
		return "", routerdomain.ErrSecretNotFound
	}
	return reply.Re[0].Map[".id"], nil
}
