package auth

import (
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/zcartvn/zcart/internal/adapter/config"
	"github.com/zcartvn/zcart/internal/core/domain"
	"github.com/zcartvn/zcart/internal/core/port"
)

const tokenDuration = 1000 * time.Hour

// PasetoToken verifies V4 local tokens issued by the identity service that
// shares the symmetric key. CreateToken exists for tests and tooling.
type PasetoToken struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
}

func New(conf *config.Auth) (port.TokenService, error) {
	parser := paseto.NewParser()

	var key paseto.V4SymmetricKey
	if conf != nil && conf.Key != "" {
		var err error
		key, err = paseto.V4SymmetricKeyFromHex(conf.Key)
		if err != nil {
			return nil, err
		}
	} else {
		key = paseto.NewV4SymmetricKey()
	}

	s := PasetoToken{
		parser: &parser,
		key:    &key,
	}

	return &s, nil
}

func (p *PasetoToken) CreateToken(userID uint64) (string, error) {
	token := paseto.NewToken()
	token.SetExpiration(time.Now().Add(tokenDuration))

	payload := port.TokenPayload{UserID: userID}
	err := token.Set("payload", payload)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get("payload", &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
