package routes

import (
	"encoding/json"
	"strings"

	"github.com/fulltechdev/kiame-hotel/models"
	"github.com/fulltechdev/kiame-hotel/services"
	"github.com/fulltechdev/kiame-hotel/storage"
	"github.com/fulltechdev/kiame-hotel/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

// SearchRooms handles room search with type, price and date filters. With
// check-in and check-out present only rooms that are open and conflict-free
// for the stay are returned; without dates it is a plain price-sorted browse.
func SearchRooms(ctx iris.Context) {
	filter := services.SearchFilter{
		Type: strings.TrimSpace(ctx.URLParam("type")),
	}
	if filter.Type != "" && !models.IsValidRoomType(filter.Type) {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_type", "Unknown room type")
		return
	}
	if maxPrice, err := ctx.URLParamFloat64("maxPrice"); err == nil && maxPrice > 0 {
		filter.MaxPrice = maxPrice
	}

	startStr := strings.TrimSpace(ctx.URLParam("start"))
	endStr := strings.TrimSpace(ctx.URLParam("end"))
	if startStr != "" && endStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "start must be YYYY-MM-DD")
			return
		}
		end, err := parseDate(endStr)
		if err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "end must be YYYY-MM-DD")
			return
		}
		filter.Start = &start
		filter.End = &end
	}

	resolver := services.NewBookingResolver(storage.DB)
	rooms, err := resolver.Search(filter)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}
	ctx.JSON(rooms)
}

func GetRoom(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var room models.Room
	if err := storage.DB.Preload("AvailabilityWindows").First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(room)
}

type RoomInput struct {
	Name          string   `json:"name" validate:"required,max=256"`
	Description   string   `json:"description" validate:"max=2048"`
	Type          string   `json:"type" validate:"required,oneof=standard superior suite deluxe"`
	PricePerNight float64  `json:"pricePerNight" validate:"required,min=0"`
	Capacity      int      `json:"capacity" validate:"required,min=1"`
	ImageURL      string   `json:"imageURL"`
	Amenities     []string `json:"amenities"`
}

// POST /api/admin/rooms
func AdminCreateRoom(ctx iris.Context) {
	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	room := models.Room{
		Name:          input.Name,
		Description:   input.Description,
		Type:          input.Type,
		PricePerNight: input.PricePerNight,
		Capacity:      input.Capacity,
		ImageURL:      input.ImageURL,
		Amenities:     amenitiesJSON(input.Amenities),
	}
	if err := storage.DB.Create(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "room.create", "room", room.ID, nil, room)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(room)
}

// PATCH /api/admin/rooms/:id
func AdminUpdateRoom(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := room
	room.Name = input.Name
	room.Description = input.Description
	room.Type = input.Type
	room.PricePerNight = input.PricePerNight
	room.Capacity = input.Capacity
	room.ImageURL = input.ImageURL
	room.Amenities = amenitiesJSON(input.Amenities)

	if err := storage.DB.Save(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "room.update", "room", room.ID, before, room)
	ctx.JSON(room)
}

// DELETE /api/admin/rooms/:id
func AdminDeleteRoom(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// Rooms with active reservations stay on the books until those are
	// cancelled; deleting them would orphan the bookings.
	var active int64
	storage.DB.Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ?", id,
			[]string{models.ReservationPending, models.ReservationConfirmed}).
		Count(&active)
	if active > 0 {
		utils.JSONError(ctx, iris.StatusConflict, "room_in_use", "Room has active reservations")
		return
	}

	if err := storage.DB.Delete(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "room.delete", "room", room.ID, room, nil)
	ctx.JSON(iris.Map{"ok": true})
}

func amenitiesJSON(amenities []string) datatypes.JSON {
	if len(amenities) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	out, err := json.Marshal(amenities)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(out)
}
