package controllers

import (
	"net/http"
	"strconv"

	"github.com/MohamedHARBILI/appMoviesBackend/auth"
	"github.com/MohamedHARBILI/appMoviesBackend/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// UserController exposes user registration, lookup and login routes.
type UserController struct {
	userService services.UserService
}

// NewUserController creates a UserController instance
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// LoginCredentials defines the structure of the login request
type LoginCredentials struct {
	Username string `json:"username" description:"Username for login"`
	Password string `json:"password" description:"Password for login"`
}

// LoginResponse defines the structure of the login response
type LoginResponse struct {
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// RegisterRoutes sets up the user-related routes.
func (ctl *UserController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/api/users").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.POST("/register").To(ctl.createUserHandler).
		Doc("Register a new user").
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Reads(services.CreateUserInput{}).
		Returns(http.StatusCreated, "User created successfully", services.UserResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusConflict, "Username or Email already exists", nil))

	ws.Route(ws.POST("/login").To(ctl.loginHandler).
		Doc("Authenticate and obtain a token").
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Reads(LoginCredentials{}).
		Returns(http.StatusOK, "Authenticated", LoginResponse{}).
		Returns(http.StatusUnauthorized, "Invalid credentials", nil))

	ws.Route(ws.GET("").To(ctl.listUsersHandler).
		Doc("List all users").
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Writes([]services.UserResponse{}).
		Returns(http.StatusOK, "Users listed successfully", []services.UserResponse{}))

	ws.Route(ws.GET("/{user-id}").To(ctl.getUserByIDHandler).
		Doc("Get user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Writes(services.UserResponse{}).
		Returns(http.StatusOK, "User found", services.UserResponse{}).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.GET("/username/{username}").To(ctl.getUserByUsernameHandler).
		Doc("Get user by username").
		Param(ws.PathParameter("username", "Username of the user")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Writes(services.UserResponse{}).
		Returns(http.StatusOK, "User found", services.UserResponse{}).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.GET("/email/{email}").To(ctl.getUserByEmailHandler).
		Doc("Get user by email").
		Param(ws.PathParameter("email", "Email of the user")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Writes(services.UserResponse{}).
		Returns(http.StatusOK, "User found", services.UserResponse{}).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.PUT("/{user-id}").Filter(auth.AuthFilter()).To(ctl.updateUserHandler).
		Doc("Update user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user to update").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Reads(services.UpdateUserInput{}).
		Writes(services.UserResponse{}).
		Returns(http.StatusOK, "User updated successfully", services.UserResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body or user ID", nil).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusNotFound, "User not found", nil).
		Returns(http.StatusConflict, "Username or email conflict", nil))

	ws.Route(ws.DELETE("/{user-id}").Filter(auth.AuthFilter()).To(ctl.deleteUserHandler).
		Doc("Delete user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user to delete").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Returns(http.StatusNoContent, "User deleted successfully", nil).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusNotFound, "User not found", nil))
}

// createUserHandler (Handles POST /api/users/register)
func (ctl *UserController) createUserHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CreateUserInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}

	user, err := ctl.userService.CreateUser(input)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusCreated, user, restful.MIME_JSON)
}

// loginHandler (Handles POST /api/users/login)
func (ctl *UserController) loginHandler(request *restful.Request, response *restful.Response) {
	creds := new(LoginCredentials)
	if err := request.ReadEntity(creds); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}
	if creds.Username == "" || creds.Password == "" {
		writeBadRequest(response, "Username and password are required")
		return
	}

	user, err := ctl.userService.Authenticate(creds.Username, creds.Password)
	if err != nil {
		handleServiceError(response, err)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		_ = response.WriteHeaderAndJson(http.StatusInternalServerError, LoginResponse{Message: "Could not generate token"}, restful.MIME_JSON)
		return
	}

	_ = response.WriteHeaderAndJson(http.StatusOK, LoginResponse{Token: token}, restful.MIME_JSON)
}

// listUsersHandler (Handles GET /api/users)
func (ctl *UserController) listUsersHandler(request *restful.Request, response *restful.Response) {
	users, err := ctl.userService.ListUsers()
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, users, restful.MIME_JSON)
}

// getUserByIDHandler (Handles GET /api/users/{user-id})
func (ctl *UserController) getUserByIDHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseUint(request.PathParameter("user-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid user ID format")
		return
	}

	user, err := ctl.userService.GetUserByID(uint(id))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, user, restful.MIME_JSON)
}

// getUserByUsernameHandler (Handles GET /api/users/username/{username})
func (ctl *UserController) getUserByUsernameHandler(request *restful.Request, response *restful.Response) {
	user, err := ctl.userService.GetUserByUsername(request.PathParameter("username"))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, user, restful.MIME_JSON)
}

// getUserByEmailHandler (Handles GET /api/users/email/{email})
func (ctl *UserController) getUserByEmailHandler(request *restful.Request, response *restful.Response) {
	user, err := ctl.userService.GetUserByEmail(request.PathParameter("email"))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, user, restful.MIME_JSON)
}

// updateUserHandler (Handles PUT /api/users/{user-id})
func (ctl *UserController) updateUserHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseUint(request.PathParameter("user-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid user ID format")
		return
	}

	input := new(services.UpdateUserInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}

	user, err := ctl.userService.UpdateUser(uint(id), input)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, user, restful.MIME_JSON)
}

// deleteUserHandler (Handles DELETE /api/users/{user-id})
func (ctl *UserController) deleteUserHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseUint(request.PathParameter("user-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid user ID format")
		return
	}

	if err := ctl.userService.DeleteUser(uint(id)); err != nil {
		handleServiceError(response, err)
		return
	}
	response.WriteHeader(http.StatusNoContent)
}
