package controllers

import (
	"errors"
	"net/http"

	"bmicalc/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Profiles *services.ProfileService
}

func NewUserController(profiles *services.ProfileService) *UserController {
	return &UserController{Profiles: profiles}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	profile, err := uc.Profiles.GetProfile(c.GetUint("userID"))
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := uc.Profiles.UpdateProfile(c.GetUint("userID"), input); err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}

func (uc *UserController) GetBMI(c *gin.Context) {
	out, err := uc.Profiles.ProfileBMI(c.GetUint("userID"))
	if err != nil {
		if out == nil {
			respondProfileError(c, err)
			return
		}
		respondCalcError(c, err, out.Display)
		return
	}
	c.JSON(http.StatusOK, out)
}

func respondProfileError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
