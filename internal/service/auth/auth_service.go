package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nhasan91/railbooking/internal/domain"
	"github.com/nhasan91/railbooking/internal/railapi"
)

type AuthUseCase interface {
	SignIn(ctx context.Context, mobile, password string) (*domain.Session, error)
}

// Authenticator exchanges credentials for a bearer token. Sign-in is the only
// call with a bounded retry budget: exhausting it is fatal for the run.
type Authenticator struct {
	client *railapi.Client
	policy railapi.Policy
}

func NewAuthenticator(client *railapi.Client, policy railapi.Policy) *Authenticator {
	return &Authenticator{client: client, policy: policy}
}

func (a *Authenticator) SignIn(ctx context.Context, mobile, password string) (*domain.Session, error) {
	var session *domain.Session

	err := a.policy.Run(ctx, func() (bool, error) {
		resp := a.client.Do(ctx, http.MethodPost, railapi.EndpointSignIn, nil, railapi.SignInRequest{
			MobileNumber: mobile,
			Password:     password,
		})
		switch resp.Kind {
		case railapi.KindSuccess:
			var body railapi.SignInResponse
			if err := resp.Decode(&body); err != nil {
				return false, err
			}
			if body.Data.Token == "" {
				return false, fmt.Errorf("%w: sign-in succeeded without a token", railapi.ErrMalformedResponse)
			}
			a.client.SetToken(body.Data.Token)
			session = newSession(body.Data.Token)
			return true, nil
		case railapi.KindRetryable:
			log.Printf("sign-in: server error, retrying: %s", resp.Detail())
			return false, nil
		default:
			return false, fmt.Errorf("sign-in failed: %s", resp.Detail())
		}
	})
	if err != nil {
		if err == railapi.ErrRetriesExhausted {
			return nil, fmt.Errorf("sign-in: %w", err)
		}
		return nil, err
	}
	return session, nil
}

// newSession decodes the token claims without signature verification; the
// identity fields are display-only. A token that will not decode still yields
// a usable session.
func newSession(token string) *domain.Session {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.Printf("failed to decode auth token claims: %v", err)
		return &domain.Session{Token: token}
	}
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	return &domain.Session{
		Token:       token,
		Email:       str("email"),
		Phone:       str("phone_number"),
		DisplayName: str("display_name"),
	}
}

var _ AuthUseCase = (*Authenticator)(nil)
