package controllers

import (
	"context"
	"net/http"

	"capster-board/services"
	"capster-board/utils"

	"github.com/gin-gonic/gin"
)

type MastersLister interface {
	List(ctx context.Context) (*services.Masters, error)
}

type MasterController struct {
	masters MastersLister
}

func NewMasterController(masters MastersLister) *MasterController {
	return &MasterController{masters: masters}
}

// GetMasters returns the treatments and capsters the booking form offers
func (mc *MasterController) GetMasters(c *gin.Context) {
	masters, err := mc.masters.List(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, masters)
}
