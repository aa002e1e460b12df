package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"capster-board/models"
	"capster-board/repository"
	"capster-board/utils"

	"github.com/gin-gonic/gin"
)

const customerSearchLimit = 20

type CustomerStore interface {
	Search(ctx context.Context, q string, limit int) ([]models.Customer, error)
	FindByWhatsApp(ctx context.Context, whatsapp string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
}

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
}

type CustomerController struct {
	store CustomerStore
}

func NewCustomerController(store CustomerStore) *CustomerController {
	return &CustomerController{store: store}
}

// SearchCustomers matches ?q= against names and WhatsApp numbers
func (cc *CustomerController) SearchCustomers(c *gin.Context) {
	customers, err := cc.store.Search(c.Request.Context(), c.Query("q"), customerSearchLimit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, customers)
}

// CreateCustomer registers a new customer
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	name := strings.TrimSpace(input.Name)
	whatsapp := strings.TrimSpace(input.WhatsApp)
	if name == "" || whatsapp == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "name and whatsapp are required")
		return
	}
	if !utils.ValidateWhatsApp(whatsapp) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid whatsapp number format")
		return
	}

	// Check if the number already belongs to someone
	existing, err := cc.store.FindByWhatsApp(c.Request.Context(), whatsapp)
	switch {
	case err == nil:
		utils.RespondWithError(c, http.StatusConflict, duplicateCustomerMessage(existing.Name))
		return
	case !errors.Is(err, repository.ErrNotFound):
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	customer := models.Customer{Name: name, WhatsApp: whatsapp}
	if err := cc.store.Create(c.Request.Context(), &customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.RespondWithError(c, http.StatusConflict, duplicateCustomerMessage(""))
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func duplicateCustomerMessage(owner string) string {
	if owner == "" {
		return "Nomor WhatsApp sudah terdaftar"
	}
	return fmt.Sprintf("Nomor WhatsApp sudah terdaftar atas nama %s", owner)
}
