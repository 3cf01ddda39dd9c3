package pasetotoken

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/clinicdesk/clinicdesk_backend/config"
)

const CtxKeyClaims = "auth.claims"

func ClaimsFromFiber(c fiber.Ctx) (*Claims, bool) {
	v := c.Locals(CtxKeyClaims)
	if v == nil {
		return nil, false
	}
	cl, ok := v.(*Claims)
	return cl, ok
}

// NewPasetoManager creates a new PASETO manager from config. When no key
// material is configured, a fresh local key is generated for this process.
func NewPasetoManager(cfg *config.Config) (*Manager, error) {
	p := cfg.Authentication.Paseto

	mode := Mode(p.Mode)
	if mode == "" {
		mode = ModeLocal
	}

	var (
		keys Keys
		err  error
	)
	if mode == ModeLocal && p.LocalKeyHex == "" {
		keys = NewLocalKeys()
	} else {
		keys, err = LoadKeys(KeyStrings{
			Mode:         mode,
			SymmetricHex: p.LocalKeyHex,
			SecretHex:    p.SecretKeyHex,
			PublicHex:    p.PublicKeyHex,
		})
		if err != nil {
			return nil, err
		}
	}

	issuer := p.Issuer
	if issuer == "" {
		issuer = "clinicdesk"
	}
	audience := p.Audience
	if audience == "" {
		audience = "clinicdesk-api"
	}

	return New(Config{
		Mode:       mode,
		Issuer:     issuer,
		Audience:   audience,
		AccessTTL:  time.Duration(p.AccessTTLMinutes) * time.Minute,
		RefreshTTL: time.Duration(p.RefreshTTLDays) * 24 * time.Hour,
		Implicit:   nil,
	}, keys)
}
