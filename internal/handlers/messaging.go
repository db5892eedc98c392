package handlers

import (
	"errors"
	"log"

	"mentorin/server/internal/messaging"

	"github.com/gofiber/fiber/v2"
)

// Messaging is the facade all messaging handlers delegate to.
var Messaging *messaging.Service

// InitMessaging wires the messaging facade used by the handlers.
func InitMessaging(svc *messaging.Service) {
	Messaging = svc
}

// SendMessageRequest represents send message request body
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// SendMessage sends a direct message
func SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	userName, _ := c.Locals("name").(string)
	userRole, _ := c.Locals("role").(string)

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	message, err := Messaging.Send(c.Context(), messaging.SendInput{
		SenderID:   userID,
		SenderName: userName,
		SenderRole: userRole,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    message,
	})
}

// GetThread returns the full message history with another user. Opening
// the thread marks the caller's inbound messages as read.
func GetThread(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	counterpartID := c.Params("userId")

	messages, err := Messaging.OpenConversation(c.Context(), userID, counterpartID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    messages,
	})
}

// GetConversations returns the caller's conversation list
func GetConversations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	conversations, err := Messaging.Conversations(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    conversations,
	})
}

// GetUnreadCount returns the caller's total unread message count
func GetUnreadCount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	count, err := Messaging.UnreadBadge(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"unreadCount": count,
		},
	})
}

// SearchUsers finds candidate recipients by name or email
func SearchUsers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	query := c.Query("q", "")

	results, err := Messaging.SearchRecipients(c.Context(), query, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    results,
	})
}

// respondError maps messaging errors onto HTTP status codes. Storage
// failures are logged and surfaced as a generic 500; callers only need
// to know the operation failed.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *messaging.ValidationError
	var notFoundErr *messaging.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   validationErr.Reason,
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   notFoundErr.Error(),
		})
	default:
		log.Printf("Messaging error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
}
