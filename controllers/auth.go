package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/dentacare/dental-center-api/models"
	"github.com/dentacare/dental-center-api/store"
)

func signedToken(user models.User, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(time.Hour * 24).Unix(), // 24 hour expiration
	}
	if user.PatientID != "" {
		claims["patientId"] = user.PatientID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

type registerInput struct {
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Password         string      `json:"password"`
	DOB              models.Time `json:"dob"`
	Contact          string      `json:"contact"`
	Address          string      `json:"address"`
	EmergencyContact string      `json:"emergencyContact"`
	HealthInfo       string      `json:"healthInfo"`
	BloodGroup       string      `json:"bloodGroup"`
}

// Register creates a patient account: a Patient-role user paired 1:1 with
// its patient record.
func Register(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(registerInput)
		if err := c.BodyParser(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}
		if input.Email == "" || input.Password == "" || input.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing required fields",
			})
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to hash password",
			})
		}

		user, err := st.CreateUser(c.Context(), models.User{
			Role:     models.RolePatient,
			Email:    input.Email,
			Password: string(hashedPassword),
			Name:     input.Name,
		})
		if errors.Is(err, store.ErrEmailExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "User with this email already exists",
			})
		}
		if err != nil {
			log.Printf("Error creating user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create user",
			})
		}

		patient, err := st.CreatePatient(c.Context(), models.Patient{
			Name:             input.Name,
			DOB:              input.DOB,
			Contact:          input.Contact,
			Email:            input.Email,
			Address:          input.Address,
			EmergencyContact: input.EmergencyContact,
			HealthInfo:       input.HealthInfo,
			BloodGroup:       input.BloodGroup,
			UserID:           user.ID,
		})
		if err != nil {
			log.Printf("Error creating patient record: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create patient record",
			})
		}

		user.PatientID = patient.ID
		if user, err = st.UpdateUser(c.Context(), user); err != nil {
			log.Printf("Error linking patient to user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to link patient record",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"user":    user.Sanitized(),
			"patient": patient,
		})
	}
}

// Login handles user authentication
func Login(st *store.Store, secret []byte) fiber.Handler {
	type loginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(c *fiber.Ctx) error {
		input := new(loginInput)
		if err := c.BodyParser(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}

		user, err := st.GetUserByEmail(input.Email)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}

		token, err := signedToken(user, secret)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create token",
			})
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  user.Sanitized(),
		})
	}
}

// Me returns the authenticated user's profile.
func Me(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(string)
		user, err := st.GetUserByID(userID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.JSON(user.Sanitized())
	}
}

// RefreshToken issues a fresh 24h token for an authenticated caller.
func RefreshToken(st *store.Store, secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(string)
		user, err := st.GetUserByID(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		token, err := signedToken(user, secret)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create token",
			})
		}
		return c.JSON(fiber.Map{"token": token})
	}
}
