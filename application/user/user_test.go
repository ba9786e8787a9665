package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appuser "github.com/muhammadheryan/marketplace/application/user"
	"github.com/muhammadheryan/marketplace/cmd/config"
	"github.com/muhammadheryan/marketplace/constant"
	redismocks "github.com/muhammadheryan/marketplace/mocks/repository/redis"
	usermocks "github.com/muhammadheryan/marketplace/mocks/repository/user"
	"github.com/muhammadheryan/marketplace/model"
	cerr "github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
		},
	}
}

func TestUserApp_Register(t *testing.T) {
	type fields struct {
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.RegisterRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: register seller",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.RegisterRequest{
				Name:     "Asep",
				Email:    "asep@mail.com",
				Phone:    "0812000111",
				Password: "secret123",
				Role:     "seller",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "asep@mail.com"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "0812000111"}).Return(nil, nil).Once()
				f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
					return u.Email == "asep@mail.com" && u.Role == constant.RoleSeller && u.PasswordHash != "secret123"
				})).Return(&model.UserEntity{
					ID: 1, Name: "Asep", Email: "asep@mail.com", Role: constant.RoleSeller,
				}, nil).Once()
			},
		},
		{
			name: "error: email already registered",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.RegisterRequest{
				Name:     "Asep",
				Email:    "asep@mail.com",
				Phone:    "0812000111",
				Password: "secret123",
				Role:     "buyer",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "asep@mail.com"}).Return(&model.UserEntity{ID: 1}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "error: admin role cannot self register",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.RegisterRequest{
				Name:     "Mallory",
				Email:    "mallory@mail.com",
				Phone:    "0812000999",
				Password: "secret123",
				Role:     "admin",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "mallory@mail.com"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "0812000999"}).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appuser.NewUserApp(testConfig(), tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Register(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got.Email != tt.req.Email {
				t.Fatalf("Register() email = %s, want %s", got.Email, tt.req.Email)
			}
		})
	}
}

func TestUserApp_LoginAndValidateToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}

	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRepository(t)

	userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "asep@mail.com"}).Return(&model.UserEntity{
		ID:           7,
		Name:         "Asep",
		Email:        "asep@mail.com",
		Role:         constant.RoleSeller,
		PasswordHash: string(hash),
	}, nil).Once()

	var storedJTI string
	redisRepo.On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(7), constant.RoleSeller, time.Hour).
		Run(func(args mock.Arguments) { storedJTI = args.String(1) }).
		Return(nil).Once()

	app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)

	res, err := app.Login(context.Background(), &model.LoginRequest{
		Identifier: "asep@mail.com",
		Password:   "secret123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Role != constant.RoleSeller || res.Token == "" {
		t.Fatalf("Login() = %+v, want seller role and a token", res)
	}

	// the session record is authoritative for the role
	redisRepo.On("GetSession", mock.Anything, mock.MatchedBy(func(jti string) bool {
		return jti == storedJTI
	})).Return(uint64(7), constant.RoleSeller, nil).Once()

	userID, role, err := app.ValidateToken(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if userID != 7 || role != constant.RoleSeller {
		t.Fatalf("ValidateToken() = (%d, %s), want (7, seller)", userID, role)
	}
}

func TestUserApp_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRepository(t)

	userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "asep@mail.com"}).Return(&model.UserEntity{
		ID:           7,
		PasswordHash: string(hash),
	}, nil).Once()

	app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)

	_, err := app.Login(context.Background(), &model.LoginRequest{
		Identifier: "asep@mail.com",
		Password:   "wrong",
	})
	var ce cerr.CustomError
	if !errors.As(err, &ce) || ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrInvalidPassword] {
		t.Fatalf("Login() error = %v, want invalid password", err)
	}
}

func TestUserApp_ValidateToken_GarbageToken(t *testing.T) {
	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRepository(t)

	app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)

	if _, _, err := app.ValidateToken(context.Background(), "not-a-token"); err == nil {
		t.Fatal("ValidateToken() on garbage token should fail")
	}
}
