package repository

import (
	"context"
	"fmt"
	"strings"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type userItem struct {
	ID     string `dynamodbav:"id"`
	Name   string `dynamodbav:"name"`
	Email  string `dynamodbav:"email,omitempty"`
	Role   string `dynamodbav:"role"`
	Active bool   `dynamodbav:"active"`
}

type companyItem struct {
	ID     string `dynamodbav:"id"`
	Name   string `dynamodbav:"name"`
	TaxID  string `dynamodbav:"tax_id,omitempty"`
	Active bool   `dynamodbav:"active"`
}

// UserDynamoRepository reads the user directory.
//
// Table requirements:
//   - users: PK id (string)
type UserDynamoRepository struct {
	ddb   *dynamodb.Client
	table string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb *dynamodb.Client, tables Tables) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, table: tables.withDefaults().Users}
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}
	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) ListByRoles(ctx context.Context, roles []entities.Role) ([]entities.User, error) {
	if len(roles) == 0 {
		return []entities.User{}, nil
	}
	placeholders := make([]string, len(roles))
	values := make(map[string]types.AttributeValue, len(roles))
	for i, role := range roles {
		key := fmt.Sprintf(":r%d", i)
		placeholders[i] = key
		values[key] = &types.AttributeValueMemberS{Value: string(role)}
	}

	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          aws.String("#role IN (" + strings.Join(placeholders, ", ") + ")"),
		ExpressionAttributeNames:  map[string]string{"#role": "role"},
		ExpressionAttributeValues: values,
	})

	users := []entities.User{}
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []userItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			users = append(users, fromUserItem(it))
		}
	}
	return users, nil
}

func (r *UserDynamoRepository) Save(ctx context.Context, u entities.User) error {
	av, err := attributevalue.MarshalMap(userItem{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Active: u.Active,
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	return err
}

func fromUserItem(it userItem) entities.User {
	role, _ := entities.ParseRole(it.Role)
	return entities.User{
		ID:     it.ID,
		Name:   it.Name,
		Email:  it.Email,
		Role:   role,
		Active: it.Active,
	}
}

// CompanyDynamoRepository reads providing companies.
//
// Table requirements:
//   - companies: PK id (string)
type CompanyDynamoRepository struct {
	ddb   *dynamodb.Client
	table string
}

var _ interfaces.ICompanyRepository = (*CompanyDynamoRepository)(nil)

func NewCompanyDynamoRepository(ddb *dynamodb.Client, tables Tables) *CompanyDynamoRepository {
	return &CompanyDynamoRepository{ddb: ddb, table: tables.withDefaults().Companies}
}

func (r *CompanyDynamoRepository) GetByID(ctx context.Context, id string) (entities.Company, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Company{}, err
	}
	if len(out.Item) == 0 {
		return entities.Company{}, nil
	}
	var it companyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Company{}, err
	}
	return entities.Company{ID: it.ID, Name: it.Name, TaxID: it.TaxID, Active: it.Active}, nil
}

func (r *CompanyDynamoRepository) Save(ctx context.Context, c entities.Company) error {
	av, err := attributevalue.MarshalMap(companyItem{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Active: c.Active})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	return err
}
