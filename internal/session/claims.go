package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// ErrMalformedToken indicates the bearer token could not be decoded
// structurally. Callers treat it as "not authenticated", never as a
// fatal fault.
var ErrMalformedToken = errors.New("session: malformed token")

// DecodeClaims extracts identity claims from a bearer token without
// verifying its signature. The platform's gateway is the party that
// validates tokens; the client only needs the subject out of the
// payload. The user ID is accepted as either a JSON number or a
// numeric string and always lands as int64, so sender comparisons
// later on cannot mismatch on representation.
func DecodeClaims(token string) (domain.Claims, error) {
	if token == "" {
		return domain.Claims{}, ErrMalformedToken
	}

	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	userID, err := subjectFromClaims(mapClaims)
	if err != nil {
		return domain.Claims{}, err
	}

	claims := domain.Claims{UserID: userID}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// subjectFromClaims prefers the platform's userId claim and falls back
// to the registered sub claim, matching what the auth service issues.
func subjectFromClaims(claims jwt.MapClaims) (int64, error) {
	for _, key := range []string{"userId", "sub"} {
		raw, ok := claims[key]
		if !ok {
			continue
		}
		id, err := coerceID(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: claim %q: %v", ErrMalformedToken, key, err)
		}
		return id, nil
	}
	return 0, fmt.Errorf("%w: no user identifier claim", ErrMalformedToken)
}

func coerceID(raw any) (int64, error) {
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric value %q", v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
}
