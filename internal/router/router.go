// Package router exposes the application over HTTP.
package router

import (
	"errors"
	"net/http"

	"ayurdiet/internal/app"
	"ayurdiet/internal/auth"
	"ayurdiet/internal/metrics"
	"ayurdiet/internal/middleware"
	"ayurdiet/internal/profile"

	"github.com/gin-gonic/gin"
)

// New builds the gin engine with all routes registered.
func New(a *app.App, tokens *auth.Tokens) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"sys":    metrics.GetSysHealth(a.DatabasePath()),
		})
	})

	r.POST("/auth/register", func(c *gin.Context) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		user, err := a.Users.Register(req.Name, req.Email, req.Password)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, auth.ErrEmailTaken) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		})
	})

	r.POST("/auth/login", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		user, err := a.Users.Login(req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}

		token, err := tokens.Generate(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	})

	api := r.Group("/api", middleware.RequireAuth(tokens))

	api.GET("/foods", func(c *gin.Context) {
		foods, err := a.FoodRepo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"foods": foods, "count": len(foods)})
	})

	api.POST("/foods/clip", func(c *gin.Context) {
		var req struct {
			URL string `json:"url" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request, url is required"})
			return
		}

		food, err := a.ClipFood(c.Request.Context(), req.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"food": food})
	})

	api.PUT("/profile", func(c *gin.Context) {
		var p profile.Profile
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile"})
			return
		}

		user, err := a.Users.UpdateProfile(c.GetString(middleware.CtxUserID), p)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": user.Profile})
	})

	api.POST("/plans", func(c *gin.Context) {
		var req struct {
			PlanType string `json:"plan_type"`
			Calories int    `json:"calories"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		userID := c.GetString(middleware.CtxUserID)
		user, err := a.Users.GetByID(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
			return
		}

		plan, list, err := a.GeneratePlan(c.Request.Context(), userID, user.Profile, req.PlanType, req.Calories)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"plan": plan, "grocery_list": list.Items})
	})

	api.GET("/plans", func(c *gin.Context) {
		plans, err := a.PlanRepo.ListRecentByUserID(c.Request.Context(), c.GetString(middleware.CtxUserID), 10)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list plans"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"plans": plans})
	})

	api.GET("/plans/:id", func(c *gin.Context) {
		stored, err := a.PlanRepo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
			return
		}
		if stored == nil || stored.UserID != c.GetString(middleware.CtxUserID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}

		list, err := a.GroceryRepo.GetByMealPlanID(c.Request.Context(), stored.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load grocery list"})
			return
		}

		resp := gin.H{"plan": stored.Plan}
		if list != nil {
			resp["grocery_list"] = list.Items
		}
		c.JSON(http.StatusOK, resp)
	})

	api.POST("/advice", func(c *gin.Context) {
		var req struct {
			Question string `json:"question" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request, question is required"})
			return
		}

		userID := c.GetString(middleware.CtxUserID)
		user, err := a.Users.GetByID(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
			return
		}

		answer, err := a.Advise(c.Request.Context(), userID, req.Question, user.Profile)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"answer": answer})
	})

	return r
}
