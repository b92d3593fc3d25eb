package routes

import (
	"github.com/fulltechdev/kiame-hotel/models"
	"github.com/fulltechdev/kiame-hotel/services"
	"github.com/fulltechdev/kiame-hotel/storage"
	"github.com/fulltechdev/kiame-hotel/utils"

	"github.com/kataras/iris/v12"
)

// Availability windows are insert/delete only: an admin edits a window by
// removing it and declaring a new one.

// GET /api/availability/room/:id
func GetRoomAvailability(ctx iris.Context) {
	roomID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid room id")
		return
	}

	var windows []models.RoomAvailability
	result := storage.DB.Where("room_id = ?", roomID).
		Order("available_from ASC").Find(&windows)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(windows)
}

type AvailabilityWindowInput struct {
	RoomID        uint   `json:"roomID" validate:"required"`
	AvailableFrom string `json:"availableFrom" validate:"required,datetime=2006-01-02"`
	AvailableTo   string `json:"availableTo" validate:"required,datetime=2006-01-02"`
}

// POST /api/admin/availability
func AdminCreateAvailabilityWindow(ctx iris.Context) {
	var input AvailabilityWindowInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	from, err := parseDate(input.AvailableFrom)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "availableFrom must be YYYY-MM-DD")
		return
	}
	to, err := parseDate(input.AvailableTo)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "availableTo must be YYYY-MM-DD")
		return
	}
	// Both endpoints are inclusive, so a single-day window is valid.
	if from.After(to) {
		handleBookingError(services.ErrInvalidRange, ctx)
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, input.RoomID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	window := models.RoomAvailability{
		RoomID:        input.RoomID,
		AvailableFrom: from,
		AvailableTo:   to,
	}
	if err := storage.DB.Create(&window).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "availability.create", "availability_window", window.ID, nil, window)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(window)
}

// DELETE /api/admin/availability/:id
func AdminDeleteAvailabilityWindow(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var window models.RoomAvailability
	if err := storage.DB.First(&window, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if err := storage.DB.Delete(&window).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "availability.delete", "availability_window", window.ID, window, nil)
	ctx.JSON(iris.Map{"ok": true})
}
