package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/lib"
	"github.com/unlinked/server/src/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConnectionController struct {
	connections *services.ConnectionService
	log         *logrus.Entry
}

func NewConnectionController(connections *services.ConnectionService, log *logrus.Entry) *ConnectionController {
	return &ConnectionController{connections: connections, log: log}
}

// SendConnectionRequest sends a connection request from the authenticated user to another user
func (ctrl *ConnectionController) SendConnectionRequest(c *fiber.Ctx) error {
	targetUserID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := currentUser(c)

	if _, err := ctrl.connections.SendRequest(c.Context(), &user, targetUserID); err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(lib.MessageResponse("Connection request sent successfully"))
}

// AcceptConnectionRequest accepts a pending connection request and updates both users' connections
func (ctrl *ConnectionController) AcceptConnectionRequest(c *fiber.Ctx) error {
	requestID, err := primitive.ObjectIDFromHex(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID format"))
	}

	user := currentUser(c)

	if err := ctrl.connections.AcceptRequest(c.Context(), requestID, &user); err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Connection request accepted successfully"))
}

// RejectConnectionRequest rejects a pending connection request
func (ctrl *ConnectionController) RejectConnectionRequest(c *fiber.Ctx) error {
	requestID, err := primitive.ObjectIDFromHex(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID format"))
	}

	user := currentUser(c)

	if err := ctrl.connections.RejectRequest(c.Context(), requestID, &user); err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Connection request rejected successfully"))
}

// GetConnectionRequests returns all pending connection requests for the authenticated user
func (ctrl *ConnectionController) GetConnectionRequests(c *fiber.Ctx) error {
	user := currentUser(c)

	requests, err := ctrl.connections.ListIncomingRequests(c.Context(), user.Id)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

// GetUserConnections returns all users connected to the authenticated user
func (ctrl *ConnectionController) GetUserConnections(c *fiber.Ctx) error {
	user := currentUser(c)

	connections, err := ctrl.connections.ListConnections(c.Context(), &user)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(connections)
}

// RemoveConnection removes a connection between the authenticated user and another user
func (ctrl *ConnectionController) RemoveConnection(c *fiber.Ctx) error {
	targetUserID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := currentUser(c)

	if err := ctrl.connections.RemoveConnection(c.Context(), user.Id, targetUserID); err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Connection removed successfully"))
}

// GetConnectionStatus returns the connection status between the authenticated user and another user
func (ctrl *ConnectionController) GetConnectionStatus(c *fiber.Ctx) error {
	targetUserID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := currentUser(c)

	status, err := ctrl.connections.GetStatus(c.Context(), &user, targetUserID)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(status)
}
