package providers

import (
	"github.com/samber/do/v2"

	"github.com/baejw0111/review-server/internal/auth"
	"github.com/baejw0111/review-server/internal/config"
	"github.com/baejw0111/review-server/internal/logger"
	"github.com/baejw0111/review-server/internal/oauth"
)

// AuthKey is the hex-encoded PASETO symmetric key.
type AuthKey string

// ProvideAuthKey loads or generates the token signing key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return "", err
	}

	// Update config with the loaded key
	cfg.Auth.AccessTokenKey = key

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
		"refresh_token_duration", cfg.Auth.RefreshTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey), cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
}

// ProvideOAuthRegistry provides the social login provider registry. A
// provider without credentials in the config is left unregistered, so a
// deployment can run with any subset of Kakao, Google, and Naver.
func ProvideOAuthRegistry(i do.Injector) (*oauth.Registry, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	registry := oauth.NewRegistry()

	providerConfigs := []struct {
		name string
		cfg  oauth.Config
		make func(oauth.Config) oauth.Provider
	}{
		{"kakao", oauthConfig(cfg.OAuth.Kakao), func(c oauth.Config) oauth.Provider { return oauth.NewKakao(c) }},
		{"google", oauthConfig(cfg.OAuth.Google), func(c oauth.Config) oauth.Provider { return oauth.NewGoogle(c) }},
		{"naver", oauthConfig(cfg.OAuth.Naver), func(c oauth.Config) oauth.Provider { return oauth.NewNaver(c) }},
	}

	for _, pc := range providerConfigs {
		if !pc.cfg.Configured() {
			log.Info("Login provider not configured, skipping", "provider", pc.name)
			continue
		}
		registry.Register(pc.make(pc.cfg))
		log.Info("Login provider registered", "provider", pc.name)
	}

	if len(registry.Names()) == 0 {
		log.Warn("No login providers configured - nobody can sign in")
	}

	return registry, nil
}

func oauthConfig(pc config.OAuthProviderConfig) oauth.Config {
	return oauth.Config{
		ClientID:     pc.ClientID,
		ClientSecret: pc.ClientSecret,
		RedirectURL:  pc.RedirectURL,
	}
}
