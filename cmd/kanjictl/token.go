package main

import (
	"errors"
	"fmt"
	"time"

	"perapera/internal/config"
	"perapera/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func (c *cli) newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 token for the write endpoints",
		Long: `Mint an HS256 token signed with auth.jwt_secret.

API clients send it as "Authorization: Bearer <token>".
The browser UI reads it from the "` + middleware.TokenCookieName + `" cookie; set it once for the
server origin, e.g. in the devtools console:

  document.cookie = "` + middleware.TokenCookieName + `=<token>; path=/; SameSite=Strict"`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signed, err := mintToken(c.cfg.Auth.JWTSecret, subject, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func mintToken(secret, subject string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("auth.jwt_secret is not configured")
	}
	if subject == "" {
		return "", errors.New("subject must not be empty")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}
	claims := jwt.RegisteredClaims{
		Issuer:    config.AppName,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
