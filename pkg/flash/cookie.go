package flash

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrymomot/formflow"
)

// Cookie is a flash store that keeps the encrypted record in the cookie
// itself, requiring no server-side state.
type Cookie struct {
	cfg    cookieConfig
	secret []byte
}

// NewCookie creates a cookie-backed flash store. The secret is used for
// AES-GCM encryption and must be at least 32 bytes.
//
// Example:
//
//	store, err := flash.NewCookie(os.Getenv("FLASH_SECRET"),
//	    flash.WithSecure(true),
//	)
func NewCookie(secret string, opts ...Option) (*Cookie, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if len(secret) < 32 {
		return nil, ErrBadSecret
	}

	cfg := defaultCookieConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cookie{cfg: cfg, secret: []byte(secret)}, nil
}

// Put encrypts the result into the carrier cookie.
func (s *Cookie) Put(_ context.Context, w http.ResponseWriter, res formflow.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}

	ciphertext, err := s.encrypt(data)
	if err != nil {
		return err
	}

	encoded := base64.RawURLEncoding.EncodeToString(ciphertext)
	http.SetCookie(w, s.cfg.cookie(encoded, s.cfg.maxAge))
	return nil
}

// Take decrypts and deletes the carrier cookie.
// Returns ErrNotFound when no result is pending and ErrDecode when the
// cookie is tampered with or undecryptable.
func (s *Cookie) Take(_ context.Context, w http.ResponseWriter, r *http.Request) (formflow.Result, error) {
	c, err := r.Cookie(s.cfg.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return formflow.Result{}, ErrNotFound
		}
		return formflow.Result{}, err
	}

	// Single-use: drop the cookie regardless of decode outcome.
	http.SetCookie(w, s.cfg.cookie("", -1))

	ciphertext, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return formflow.Result{}, ErrDecode
	}

	data, err := s.decrypt(ciphertext)
	if err != nil {
		return formflow.Result{}, ErrDecode
	}

	var res formflow.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return formflow.Result{}, ErrDecode
	}
	return res, nil
}

// encrypt uses AES-GCM with a key derived from the secret.
func (s *Cookie) encrypt(plaintext []byte) ([]byte, error) {
	key := sha256.Sum256(s.secret)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *Cookie) decrypt(ciphertext []byte) ([]byte, error) {
	key := sha256.Sum256(s.secret)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < aead.NonceSize() {
		return nil, ErrDecode
	}

	nonce := ciphertext[:aead.NonceSize()]
	return aead.Open(nil, nonce, ciphertext[aead.NonceSize():], nil)
}
