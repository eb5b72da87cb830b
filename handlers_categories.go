package main

import (
	"net/http"

	"budgetapp/store"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	CategoryTypeID uint   `json:"category_type_id"`
	AccountID      uint   `json:"account_id"`
	BudgetAmount   string `json:"budget_amount"`
}

func (r categoryRequest) params() (store.CategoryParams, error) {
	amount, err := parseAmount(r.BudgetAmount)
	if err != nil {
		return store.CategoryParams{}, err
	}
	return store.CategoryParams{
		Name:           r.Name,
		Description:    r.Description,
		CategoryTypeID: r.CategoryTypeID,
		AccountID:      r.AccountID,
		BudgetAmount:   amount,
	}, nil
}

func (a *app) listCategoriesHandler(c *gin.Context) {
	categories, err := a.store.ListCategories(currentUserID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (a *app) getCategoryHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	category, err := a.store.GetCategoryForEdit(currentUserID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *app) createCategoryHandler(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params, err := req.params()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget amount"})
		return
	}
	category, err := a.store.CreateCategory(currentUserID(c), params)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (a *app) updateCategoryHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params, err := req.params()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget amount"})
		return
	}
	category, err := a.store.UpdateCategory(currentUserID(c), id, params)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *app) deleteCategoryHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.store.DeleteCategory(currentUserID(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
