package routes

import (
	"github.com/fulltechdev/kiame-hotel/models"
	"github.com/fulltechdev/kiame-hotel/services"
	"github.com/fulltechdev/kiame-hotel/storage"
	"github.com/fulltechdev/kiame-hotel/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type CreateReservationInput struct {
	RoomID   uint   `json:"roomID" validate:"required"`
	CheckIn  string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" validate:"required,datetime=2006-01-02"`
}

// POST /api/reservations — self-service booking, always starts pending.
func CreateReservation(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, err := parseDate(input.CheckIn)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(input.CheckOut)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "checkOut must be YYYY-MM-DD")
		return
	}

	resolver := services.NewBookingResolver(storage.DB)
	reservation, err := resolver.Book(claims.ID, input.RoomID, checkIn, checkOut, models.ReservationPending)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	storage.DB.Preload("Room").First(reservation, reservation.ID)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(reservation)
}

type QuoteInput struct {
	RoomID   uint   `json:"roomID" validate:"required"`
	CheckIn  string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" validate:"required,datetime=2006-01-02"`
}

// POST /api/reservations/quote — price a candidate stay without booking.
func QuoteReservation(ctx iris.Context) {
	var input QuoteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, err := parseDate(input.CheckIn)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(input.CheckOut)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_date", "checkOut must be YYYY-MM-DD")
		return
	}

	resolver := services.NewBookingResolver(storage.DB)
	quote, err := resolver.Quote(input.RoomID, checkIn, checkOut)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}
	ctx.JSON(quote)
}

// GET /api/reservations/user/:id — a customer's own reservations, newest first.
func GetUserReservations(ctx iris.Context) {
	userID := ctx.Params().Get("id")

	var reservations []models.Reservation
	res := storage.DB.Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(reservations)
}

type UpdateReservationStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// PATCH /api/reservations/:id/status — the owning customer may cancel; an
// admin may apply any legal transition. The ledger enforces both rules.
func UpdateReservationStatus(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input UpdateReservationStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	actor := services.Actor{UserID: claims.ID, IsAdmin: claims.Role == "admin"}
	ledger := services.NewReservationLedger(storage.DB)
	reservation, err := ledger.SetStatus(id, input.Status, actor)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	if actor.IsAdmin {
		utils.Audit(ctx, "reservation.status_update", "reservation", reservation.ID, nil, reservation)
	}
	ctx.JSON(reservation)
}
