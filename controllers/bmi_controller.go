package controllers

import (
	"errors"
	"net/http"
	"strings"

	"bmicalc/models"
	"bmicalc/services"

	"github.com/gin-gonic/gin"
)

type BMIController struct {
	Calc *services.BMICalculator
}

func NewBMIController(calc *services.BMICalculator) *BMIController {
	return &BMIController{Calc: calc}
}

type CalculateInput struct {
	Fields map[string]string `json:"fields"`
	System string            `json:"system"`
}

// Calculate accepts either JSON {"fields": {...}} or plain form fields.
// ?system= overrides the measurement system for this request.
func (bc *BMIController) Calculate(c *gin.Context) {
	var input CalculateInput
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.Fields = make(map[string]string, len(c.Request.PostForm))
		for k := range c.Request.PostForm {
			input.Fields[k] = c.Request.PostForm.Get(k)
		}
	}
	if s := c.Query("system"); s != "" {
		input.System = s
	}

	calc, err := calculatorFor(bc.Calc, input.System)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := services.NewFormPage(input.Fields, calc.FieldValidators())
	res, err := calc.Calculate(page)
	if err != nil {
		respondCalcError(c, err, page.Display)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bmi":                res.Value,
		"category":           res.Category,
		"display":            page.Display,
		"measurement_system": calc.System(),
	})
}

func (bc *BMIController) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": bc.Calc.Categories()})
}

func calculatorFor(calc *services.BMICalculator, system string) (*services.BMICalculator, error) {
	if system == "" {
		return calc, nil
	}
	sys, err := models.ParseMeasurementSystem(system)
	if err != nil {
		return nil, err
	}
	return calc.WithSystem(sys), nil
}

func respondCalcError(c *gin.Context, err error, display services.Display) {
	var invalid *services.InvalidInputError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   err.Error(),
			"focus":   invalid.Field,
			"display": display,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
