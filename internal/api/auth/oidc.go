package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"

	"voting-app/config"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

func oidcProvider(c *gin.Context) (*oidc.Provider, *oauth2.Config, error) {
	if config.OIDC_ISSUER == "" {
		return nil, nil, errors.New("OIDC not configured")
	}
	provider, err := oidc.NewProvider(c.Request.Context(), config.OIDC_ISSUER)
	if err != nil {
		return nil, nil, err
	}
	cfg := &oauth2.Config{
		ClientID:     config.OIDC_CLIENT_ID,
		ClientSecret: config.OIDC_CLIENT_SECRET,
		RedirectURL:  config.OIDC_REDIRECT_URL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     provider.Endpoint(),
	}
	return provider, cfg, nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/oidc
func OIDCStart(c *gin.Context) {
	_, cfg, err := oidcProvider(c)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sign-in unavailable"})
		return
	}

	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	c.SetCookie(
		"oauth_state",
		state,
		300, // 5 minutes
		"/",
		"",    // domain (set in prod)
		false, // secure (true in prod HTTPS)
		true,  // httpOnly
	)

	c.Redirect(http.StatusFound, cfg.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/oidc/callback
func OIDCCallback(c *gin.Context) {
	provider, cfg, err := oidcProvider(c)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sign-in unavailable"})
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	token, err := cfg.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "code exchange failed"})
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no id_token in response"})
		return
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: config.OIDC_CLIENT_ID})
	idToken, err := verifier.Verify(c.Request.Context(), rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid id_token"})
		return
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil || claims.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email claim missing"})
		return
	}

	user, err := upsertUser(claims.Email, claims.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	tokenString, err := issueSessionToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	if config.FRONTEND_REDIRECT != "" {
		c.Redirect(http.StatusFound, config.FRONTEND_REDIRECT+"?token="+url.QueryEscape(tokenString))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}
