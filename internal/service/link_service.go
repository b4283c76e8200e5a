package service

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ArtifactKind names a downloadable file of a report.
type ArtifactKind string

const (
	ArtifactChart    ArtifactKind = "chart"
	ArtifactDocument ArtifactKind = "document"
)

var (
	ErrLinkInvalid = errors.New("link invalid")
	ErrLinkExpired = errors.New("link expired")
)

// LinkClaims scope a token to one artifact of one report.
type LinkClaims struct {
	ReportID string       `json:"rid"`
	Artifact ArtifactKind `json:"art"`
	jwt.RegisteredClaims
}

// LinkService emite y valida tokens firmados para descargar artefactos.
type LinkService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewLinkService generates a random signing key when secret is empty; links then live
// as long as the process.
func NewLinkService(secret string, ttl time.Duration) (*LinkService, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &LinkService{
		secret: key,
		ttl:    ttl,
		issuer: "style-finder",
		now:    time.Now,
	}, nil
}

func (s *LinkService) Issue(reportID string, artifact ArtifactKind) (string, time.Time, error) {
	if strings.TrimSpace(reportID) == "" || artifact == "" {
		return "", time.Time{}, ErrLinkInvalid
	}
	now := s.now().UTC()
	expires := now.Add(s.ttl)
	claims := LinkClaims{
		ReportID: reportID,
		Artifact: artifact,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   reportID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify checks the token was issued here for exactly this report and artifact.
func (s *LinkService) Verify(token, reportID string, artifact ArtifactKind) error {
	if strings.TrimSpace(token) == "" {
		return ErrLinkInvalid
	}
	var claims LinkClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrLinkExpired
		}
		return ErrLinkInvalid
	}
	if claims.ReportID != reportID || claims.Subject != reportID || claims.Artifact != artifact {
		return ErrLinkInvalid
	}
	return nil
}
