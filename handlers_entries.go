package main

import (
	"net/http"

	"budgetapp/store"

	"github.com/gin-gonic/gin"
)

type entryRequest struct {
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id"`
	Amount      string `json:"amount"`
	// EffectiveDate is optional ISO8601 or YYYY-MM-DD; empty means now.
	EffectiveDate string `json:"effective_date"`
}

func (r entryRequest) params() (store.EntryParams, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return store.EntryParams{}, err
	}
	date, err := parseDate(r.EffectiveDate)
	if err != nil {
		return store.EntryParams{}, err
	}
	return store.EntryParams{
		Description:   r.Description,
		CategoryID:    r.CategoryID,
		Amount:        amount,
		EffectiveDate: date,
	}, nil
}

func (a *app) listEntriesHandler(c *gin.Context) {
	entries, err := a.store.ListEntries(currentUserID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (a *app) getEntryHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	entry, err := a.store.GetEntryForEdit(currentUserID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (a *app) createEntryHandler(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params, err := req.params()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount or date"})
		return
	}
	entry, err := a.store.CreateEntry(currentUserID(c), params)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (a *app) updateEntryHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params, err := req.params()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount or date"})
		return
	}
	entry, err := a.store.UpdateEntry(currentUserID(c), id, params)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (a *app) deleteEntryHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.store.DeleteEntry(currentUserID(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
