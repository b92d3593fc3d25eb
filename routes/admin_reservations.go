package routes

import (
	"net/http"
	"strings"

	"github.com/fulltechdev/kiame-hotel/models"
	"github.com/fulltechdev/kiame-hotel/services"
	"github.com/fulltechdev/kiame-hotel/storage"
	"github.com/fulltechdev/kiame-hotel/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/reservations
func AdminListReservations(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	roomID := ctx.URLParamDefault("room_id", "")
	userID := ctx.URLParamDefault("user_id", "")
	dateFrom := ctx.URLParamDefault("date_from", "")
	dateTo := ctx.URLParamDefault("date_to", "")

	q := storage.DB.Model(&models.Reservation{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if roomID != "" {
		q = q.Where("room_id = ?", roomID)
	}
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if dateFrom != "" {
		if t, err := parseDate(dateFrom); err == nil {
			q = q.Where("check_in >= ?", t)
		}
	}
	if dateTo != "" {
		if t, err := parseDate(dateTo); err == nil {
			q = q.Where("check_out <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var items []models.Reservation
	if err := q.Preload("Room").Preload("User").Preload("User.Profile").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("created_at DESC").Find(&items).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// GET /api/admin/reservations/:id
func AdminGetReservation(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var res models.Reservation
	if err := storage.DB.Preload("Room").Preload("User").Preload("User.Profile").
		First(&res, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
		return
	}
	ctx.JSON(iris.Map{"data": res, "meta": iris.Map{}, "links": iris.Map{}})
}

type AdminCreateReservationInput struct {
	UserID   uint   `json:"userID" validate:"required"`
	RoomID   uint   `json:"roomID" validate:"required"`
	CheckIn  string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" validate:"required,datetime=2006-01-02"`
}

// POST /api/admin/reservations — direct booking on behalf of a customer.
// Skips the pending approval step: the reservation is created confirmed.
func AdminCreateReservation(ctx iris.Context) {
	var input AdminCreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, err := parseDate(input.CheckIn)
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_date", "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(input.CheckOut)
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_date", "checkOut must be YYYY-MM-DD")
		return
	}

	var customer models.User
	if err := storage.DB.First(&customer, input.UserID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "customer not found")
		return
	}

	resolver := services.NewBookingResolver(storage.DB)
	reservation, err := resolver.Book(input.UserID, input.RoomID, checkIn, checkOut, models.ReservationConfirmed)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	utils.Audit(ctx, "reservation.create_direct", "reservation", reservation.ID, nil, reservation)
	storage.DB.Preload("Room").Preload("User").First(reservation, reservation.ID)
	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": reservation})
}

type AdminCreateUserInput struct {
	Email    string `json:"email" validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,min=6,max=256"`
	FullName string `json:"fullName" validate:"required,max=256"`
	Phone    string `json:"phone" validate:"required,max=32"`
}

// POST /api/admin/users — registers a walk-in customer so the admin can book
// on their behalf (first step of the admin reservation wizard).
func AdminCreateUser(ctx iris.Context) {
	var input AdminCreateUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.User
	exists, existsErr := getAndHandleUserExists(&existing, input.Email)
	if existsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if exists {
		utils.JSONError(ctx, http.StatusConflict, "email_taken", "Email already registered")
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user := models.User{
		Email:    strings.ToLower(input.Email),
		Password: hashedPassword,
		Role:     "user",
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	profile := models.UserProfile{UserID: user.ID, FullName: input.FullName, Phone: input.Phone}
	storage.DB.Create(&profile)

	utils.Audit(ctx, "user.create", "user", user.ID, nil, user)
	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": iris.Map{"userID": user.ID, "email": user.Email, "fullName": profile.FullName}})
}

// GET /api/admin/users — customer lookup for the reservation wizard.
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}
	search := strings.TrimSpace(ctx.URLParamDefault("q", ""))

	q := storage.DB.Model(&models.User{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Joins("LEFT JOIN user_profiles ON user_profiles.user_id = users.id").
			Where("lower(users.email) LIKE ? OR lower(user_profiles.full_name) LIKE ? OR user_profiles.phone LIKE ?",
				like, like, "%"+search+"%")
	}

	var total int64
	q.Count(&total)

	var users []models.User
	if err := q.Preload("Profile").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("users.created_at DESC").Find(&users).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, users, page, perPage, total)
}
