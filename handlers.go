package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"budgetapp/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// app holds the request handlers' dependencies. The store handle is passed
// in explicitly; there are no package-level singletons.
type app struct {
	store     *store.Store
	jwtSecret []byte
}

func newApp(st *store.Store, jwtSecret []byte) *app {
	return &app{store: st, jwtSecret: jwtSecret}
}

func (a *app) setupRoutes(r *gin.Engine) {
	r.POST("/register", a.registerHandler)
	r.POST("/login", a.loginHandler)
	r.POST("/refresh", a.refreshHandler)
	r.POST("/logout", a.logoutHandler)
	authGroup := r.Group("")
	authGroup.Use(a.jwtAuthMiddleware())
	authGroup.GET("/me", a.meHandler)
	authGroup.GET("/summary", a.summaryHandler)
	authGroup.GET("/account_types", a.listAccountTypesHandler)
	authGroup.GET("/category_types", a.listCategoryTypesHandler)
	authGroup.GET("/accounts", a.listAccountsHandler)
	authGroup.POST("/accounts", a.createAccountHandler)
	authGroup.GET("/accounts/:id", a.getAccountHandler)
	authGroup.PUT("/accounts/:id", a.updateAccountHandler)
	authGroup.DELETE("/accounts/:id", a.deleteAccountHandler)
	authGroup.GET("/categories", a.listCategoriesHandler)
	authGroup.POST("/categories", a.createCategoryHandler)
	authGroup.GET("/categories/:id", a.getCategoryHandler)
	authGroup.PUT("/categories/:id", a.updateCategoryHandler)
	authGroup.DELETE("/categories/:id", a.deleteCategoryHandler)
	authGroup.GET("/entries", a.listEntriesHandler)
	authGroup.POST("/entries", a.createEntryHandler)
	authGroup.GET("/entries/:id", a.getEntryHandler)
	authGroup.PUT("/entries/:id", a.updateEntryHandler)
	authGroup.DELETE("/entries/:id", a.deleteEntryHandler)
}

func (a *app) jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return a.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		c.Set("userID", uint(sub))
		if username, ok := claims["username"].(string); ok {
			c.Set("username", username)
		}
		c.Next()
	}
}

// currentUserID returns the authenticated caller's id set by the middleware.
func currentUserID(c *gin.Context) uint {
	v, _ := c.Get("userID")
	id, _ := v.(uint)
	return id
}

// renderError translates store errors into responses. Validation and
// conflict messages are user-facing; everything unexpected is logged and
// reported as a generic failure.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrAuth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": store.ErrAuth.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// parseAmount turns a "42.50" style string into a decimal. Empty strings are
// allowed and come back as zero so required-field checks stay in the store.
func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// parseDate accepts RFC3339 or a bare YYYY-MM-DD day. Day-only dates are
// taken in the server's zone, the same zone the monthly summary windows
// use, so an entry dated the 1st lands in that month.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

func (a *app) registerHandler(c *gin.Context) {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := a.store.Register(store.RegisterParams{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully", "id": user.ID})
}

func (a *app) loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := a.store.Authenticate(req.Username, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}
	tokenString, err := a.signAccessToken(user.ID, user.Username, 24*time.Hour)
	if err != nil {
		renderError(c, err)
		return
	}
	refreshToken, err := a.store.IssueRefreshToken(user.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

func (a *app) signAccessToken(userID uint, username string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      float64(userID),
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(a.jwtSecret)
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func (a *app) refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, newToken, err := a.store.RotateRefreshToken(req.RefreshToken)
	if err != nil {
		renderError(c, err)
		return
	}
	user, err := a.store.GetUser(userID)
	if err != nil {
		renderError(c, err)
		return
	}
	tokenString, err := a.signAccessToken(user.ID, user.Username, 15*time.Minute)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newToken})
}

// logoutHandler revokes the caller's refresh token. It always succeeds, even
// for tokens that were never issued.
func (a *app) logoutHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken != "" {
		if err := a.store.RevokeRefreshToken(req.RefreshToken); err != nil {
			renderError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (a *app) meHandler(c *gin.Context) {
	user, err := a.store.GetUser(currentUserID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username, "email": user.Email})
}

func (a *app) listAccountTypesHandler(c *gin.Context) {
	types, err := a.store.ListAccountTypes()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (a *app) listCategoryTypesHandler(c *gin.Context) {
	types, err := a.store.ListCategoryTypes()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (a *app) summaryHandler(c *gin.Context) {
	summary, err := a.store.MonthlySummary(currentUserID(c), time.Now())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
