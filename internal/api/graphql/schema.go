// Package graphql wires the account operations into a hand-built schema.
// Business outcomes travel inside {ok, error, ...} payloads; only capability
// rejections surface as GraphQL-level errors.
package graphql

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/spec-kit/eats-service/internal/api/dto"
	"github.com/spec-kit/eats-service/internal/auth"
	"github.com/spec-kit/eats-service/internal/domain"
)

// ErrUnauthenticated is returned by capability-gated resolvers when no user
// was attached by the identity middleware.
var ErrUnauthenticated = errors.New("unauthorized")

// AccountOps is the service surface the resolvers depend on.
type AccountOps interface {
	CreateAccount(ctx context.Context, in dto.CreateAccountInput) dto.CoreOutput
	Login(ctx context.Context, in dto.LoginInput) dto.LoginOutput
	EditProfile(ctx context.Context, userID int64, in dto.EditProfileInput) dto.CoreOutput
	VerifyEmail(ctx context.Context, code string) dto.CoreOutput
	FindUserByID(ctx context.Context, id int64) dto.UserOutput
}

// NewSchema builds the executable schema around the account service.
func NewSchema(accounts AccountOps) (graphql.Schema, error) {
	roleEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "UserRole",
		Values: graphql.EnumValueConfigMap{
			"Client":   &graphql.EnumValueConfig{Value: string(domain.RoleClient)},
			"Owner":    &graphql.EnumValueConfig{Value: string(domain.RoleOwner)},
			"Delivery": &graphql.EnumValueConfig{Value: string(domain.RoleDelivery)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role":      &graphql.Field{Type: graphql.NewNonNull(roleEnum)},
			"verified":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	coreOutputFields := func() graphql.Fields {
		return graphql.Fields{
			"ok":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"error": &graphql.Field{Type: graphql.String},
		}
	}

	createAccountOutput := graphql.NewObject(graphql.ObjectConfig{
		Name:   "CreateAccountOutput",
		Fields: coreOutputFields(),
	})
	editProfileOutput := graphql.NewObject(graphql.ObjectConfig{
		Name:   "EditProfileOutput",
		Fields: coreOutputFields(),
	})
	verifyEmailOutput := graphql.NewObject(graphql.ObjectConfig{
		Name:   "VerifyEmailOutput",
		Fields: coreOutputFields(),
	})

	loginOutputFields := coreOutputFields()
	loginOutputFields["token"] = &graphql.Field{Type: graphql.String}
	loginOutput := graphql.NewObject(graphql.ObjectConfig{
		Name:   "LoginOutput",
		Fields: loginOutputFields,
	})

	userOutputFields := coreOutputFields()
	userOutputFields["user"] = &graphql.Field{Type: userType}
	userOutput := graphql.NewObject(graphql.ObjectConfig{
		Name:   "UserOutput",
		Fields: userOutputFields,
	})

	createAccountInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateAccountInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"role":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(roleEnum)},
		},
	})
	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	editProfileInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EditProfileInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	verifyEmailInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "VerifyEmailInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"code": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := auth.UserFromContext(p.Context)
					if !ok {
						return nil, ErrUnauthenticated
					}
					return dto.NewUserView(user), nil
				},
			},
			"userProfile": &graphql.Field{
				Type: userOutput,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, ok := auth.UserFromContext(p.Context); !ok {
						return nil, ErrUnauthenticated
					}
					id, _ := p.Args["id"].(int)
					return userEnvelope(accounts.FindUserByID(p.Context, int64(id))), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createAccount": &graphql.Field{
				Type: createAccountOutput,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createAccountInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputMap(p)
					return envelope(accounts.CreateAccount(p.Context, dto.CreateAccountInput{
						Email:    stringArg(in, "email"),
						Password: stringArg(in, "password"),
						Role:     stringArg(in, "role"),
					})), nil
				},
			},
			"login": &graphql.Field{
				Type: loginOutput,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputMap(p)
					return loginEnvelope(accounts.Login(p.Context, dto.LoginInput{
						Email:    stringArg(in, "email"),
						Password: stringArg(in, "password"),
					})), nil
				},
			},
			"editProfile": &graphql.Field{
				Type: editProfileOutput,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(editProfileInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := auth.UserFromContext(p.Context)
					if !ok {
						return nil, ErrUnauthenticated
					}
					in := inputMap(p)
					return envelope(accounts.EditProfile(p.Context, user.ID, dto.EditProfileInput{
						Email:    stringArg(in, "email"),
						Password: stringArg(in, "password"),
					})), nil
				},
			},
			"verifyEmail": &graphql.Field{
				Type: verifyEmailOutput,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(verifyEmailInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := inputMap(p)
					return envelope(accounts.VerifyEmail(p.Context, stringArg(in, "code"))), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func inputMap(p graphql.ResolveParams) map[string]interface{} {
	in, _ := p.Args["input"].(map[string]interface{})
	return in
}

func stringArg(in map[string]interface{}, key string) string {
	val, _ := in[key].(string)
	return val
}

// The envelope DTOs embed CoreOutput; the default resolver does not promote
// embedded fields, so envelopes are flattened to maps explicitly.
func envelope(out dto.CoreOutput) map[string]interface{} {
	m := map[string]interface{}{"ok": out.OK}
	if out.Error != nil {
		m["error"] = *out.Error
	}
	return m
}

func loginEnvelope(out dto.LoginOutput) map[string]interface{} {
	m := envelope(out.CoreOutput)
	if out.Token != nil {
		m["token"] = *out.Token
	}
	return m
}

func userEnvelope(out dto.UserOutput) map[string]interface{} {
	m := envelope(out.CoreOutput)
	if out.User != nil {
		m["user"] = out.User
	}
	return m
}
