package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/Paphonsan-l/POS-CRUD/internal/db"
	"github.com/Paphonsan-l/POS-CRUD/internal/models"
)

var (
	provider     *oidc.Provider
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
)

func Init() {
	ctx := context.Background()

	var err error
	provider, err = oidc.NewProvider(ctx, os.Getenv("OIDC_ISSUER"))
	if err != nil {
		log.Fatalf("OIDC provider init error: %v", err)
	}

	verifier = provider.Verifier(&oidc.Config{ClientID: os.Getenv("OIDC_CLIENT_ID")})

	oauth2Config = &oauth2.Config{
		ClientID:     os.Getenv("OIDC_CLIENT_ID"),
		ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "phone"},
	}
}

// GET /auth/login
func Login(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "state generation failed"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("oauth_state", state)
	_ = sess.Save()

	c.Redirect(http.StatusFound, oauth2Config.AuthCodeURL(state))
}

// GET /auth/callback
func Callback(c *gin.Context) {
	sess := sessions.Default(c)

	expectedState, _ := sess.Get("oauth_state").(string)
	if expectedState == "" || c.Query("state") != expectedState {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
		return
	}
	sess.Delete("oauth_state")

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code missing"})
		return
	}

	ctx := c.Request.Context()
	oauth2Token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token exchange failed"})
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no id_token in token response"})
		return
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token verification failed"})
		return
	}

	var claims struct {
		Sub   string `json:"sub"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone_number"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "claims parse error"})
		return
	}

	// Upsert the customer record for this identity.
	var cust models.Customer
	if err := db.DB.Where("o_id_c_id = ?", claims.Sub).First(&cust).Error; err != nil {
		cust = models.Customer{
			OIDCID: claims.Sub,
			Name:   claims.Name,
			Email:  claims.Email,
			Phone:  claims.Phone,
		}
		db.DB.Create(&cust)
	}

	sess.Set("customer_id", cust.ID)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "customer": cust})
}

// RequireAuth ensures a logged-in principal and puts it on the request
// context. Downstream code receives the customer explicitly; nothing reads
// ambient globals.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		custID, ok := sess.Get("customer_id").(uint)
		if !ok || custID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var cust models.Customer
		if err := db.DB.First(&cust, custID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.Set("customer", &cust)
		c.Next()
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
