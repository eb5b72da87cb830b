package main

import (
	"net/http"

	"budgetapp/store"

	"github.com/gin-gonic/gin"
)

// accountRequest is the JSON body for account create/update. Amounts travel
// as strings so clients never round-trip through binary floats.
type accountRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	AccountTypeID uint   `json:"account_type_id"`
	InitialAmount string `json:"initial_amount"`
}

func (r accountRequest) params() (store.AccountParams, error) {
	amount, err := parseAmount(r.InitialAmount)
	if err != nil {
		return store.AccountParams{}, err
	}
	return store.AccountParams{
		Name:          r.Name,
		Description:   r.Description,
		AccountTypeID: r.AccountTypeID,
		InitialAmount: amount,
	}, nil
}

func (a *app) listAccountsHandler(c *gin.Context) {
	accounts, err := a.store.ListAccounts(currentUserID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (a *app) getAccountHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	account, err := a.store.GetAccountForEdit(currentUserID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (a *app) createAccountHandler(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params, err := req.params()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid initial amount"})
		return
	}
	account, err := a.store.CreateAccount(currentUserID(c), params)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (a *app) updateAccountHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params, err := req.params()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid initial amount"})
		return
	}
	account, err := a.store.UpdateAccount(currentUserID(c), id, params)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (a *app) deleteAccountHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.store.DeleteAccount(currentUserID(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
