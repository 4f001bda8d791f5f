package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-api/internal/logger"
)

type objectKind string

const (
	kindTable     objectKind = "table"
	kindTableType objectKind = "table type"
	kindProcedure objectKind = "procedure"
)

type schemaObject struct {
	name string
	kind objectKind
	ddl  string
}

// schemaObjects is ordered so that every object only depends on earlier ones.
var schemaObjects = []schemaObject{
	{name: "Restaurants", kind: kindTable, ddl: `
CREATE TABLE [{{schema}}].[Restaurants]
(
	Id          int IDENTITY(1,1) NOT NULL PRIMARY KEY,
	Name        nvarchar(200)  NOT NULL,
	CuisineType nvarchar(100)  NOT NULL,
	Website     nvarchar(2048) NULL,
	Phone       nvarchar(50)   NOT NULL
);`},
	{name: "RestaurantLocation", kind: kindTable, ddl: `
CREATE TABLE [{{schema}}].[RestaurantLocation]
(
	Id           int IDENTITY(1,1) NOT NULL PRIMARY KEY,
	RestaurantId int NOT NULL
		CONSTRAINT FK_RestaurantLocation_Restaurants REFERENCES [{{schema}}].[Restaurants](Id),
	Street       nvarchar(200) NULL,
	City         nvarchar(100) NOT NULL,
	[State]      char(2)       NOT NULL,
	Country      nvarchar(100) NOT NULL,
	ZipCode      varchar(10)   NOT NULL
);`},
	{name: "IntCollection", kind: kindTableType, ddl: `
CREATE TYPE [{{schema}}].[IntCollection] AS TABLE
(
	Id int NOT NULL
);`},
	{name: RestaurantType, kind: kindTableType, ddl: `
CREATE TYPE [{{schema}}].[RestaurantType] AS TABLE
(
	Id          int            NULL,
	Name        nvarchar(200)  NOT NULL,
	CuisineType nvarchar(100)  NOT NULL,
	Website     nvarchar(2048) NULL,
	Phone       nvarchar(50)   NOT NULL
);`},
	{name: RestaurantLocationType, kind: kindTableType, ddl: `
CREATE TYPE [{{schema}}].[RestaurantLocationType] AS TABLE
(
	Id           int           NULL,
	RestaurantId int           NOT NULL,
	Street       nvarchar(200) NULL,
	City         nvarchar(100) NOT NULL,
	[State]      char(2)       NOT NULL,
	Country      nvarchar(100) NOT NULL,
	ZipCode      varchar(10)   NOT NULL
);`},
	{name: GetAllRestaurantsProc, kind: kindProcedure, ddl: `
CREATE OR ALTER PROCEDURE [{{schema}}].[sp_GetAllRestaurants]
AS
BEGIN
	SET NOCOUNT ON;

	` + selectRestaurantsSQL + `;
END`},
	{name: FindRestaurantsProc, kind: kindProcedure, ddl: `
CREATE OR ALTER PROCEDURE [{{schema}}].[sp_FindRestaurants]
(
	@Name    nvarchar(200),
	@Cuisine nvarchar(100)
)
AS
BEGIN
	SET NOCOUNT ON;

	` + selectRestaurantsSQL + `
	WHERE r.Name LIKE '%' + @Name + '%'
		AND r.CuisineType LIKE '%' + @Cuisine + '%';
END`},
	{name: GetRestaurantByIDProc, kind: kindProcedure, ddl: `
CREATE OR ALTER PROCEDURE [{{schema}}].[sp_GetRestaurantById]
(
	@Id int
)
AS
BEGIN
	SET NOCOUNT ON;

	` + selectRestaurantsSQL + `
	WHERE r.Id = @Id;
END`},
	{name: InsertRestaurantProc, kind: kindProcedure, ddl: `
CREATE OR ALTER PROCEDURE [{{schema}}].[sp_InsertRestaurant]
(
	@Name    nvarchar(200),
	@Cuisine nvarchar(100),
	@Website nvarchar(2048) = NULL,
	@Phone   nvarchar(50),
	@Street  nvarchar(200) = NULL,
	@City    nvarchar(100),
	@State   char(2),
	@ZipCode varchar(10),
	@Country nvarchar(100)
)
AS
BEGIN
	SET NOCOUNT ON;

	INSERT INTO [{{schema}}].[Restaurants] (Name, CuisineType, Website, Phone)
	VALUES (@Name, @Cuisine, @Website, @Phone);

	DECLARE @NewId int = CAST(SCOPE_IDENTITY() AS int);

	INSERT INTO [{{schema}}].[RestaurantLocation] (RestaurantId, Street, City, [State], Country, ZipCode)
	VALUES (@NewId, @Street, @City, @State, @Country, @ZipCode);

	SELECT @NewId AS Id;
END`},
	{name: GetAndInsertRestaurantsProc, kind: kindProcedure, ddl: `
CREATE OR ALTER PROCEDURE [{{schema}}].[sp_GetAndInsertRestaurants]
(
	@NewRestaurants [{{schema}}].[RestaurantType] READONLY
)
AS
BEGIN
	SET NOCOUNT ON;

	INSERT INTO [{{schema}}].[Restaurants] (Name, CuisineType, Website, Phone)
	OUTPUT inserted.Id, inserted.Name, inserted.CuisineType, inserted.Website, inserted.Phone
	SELECT Name, CuisineType, Website, Phone
	FROM @NewRestaurants;
END`},
	{name: InsertRestaurantAddressesProc, kind: kindProcedure, ddl: `
CREATE OR ALTER PROCEDURE [{{schema}}].[sp_InsertRestaurantAddresses]
(
	@NewAddresses [{{schema}}].[RestaurantLocationType] READONLY
)
AS
BEGIN
	INSERT INTO [{{schema}}].[RestaurantLocation] (RestaurantId, Street, City, [State], Country, ZipCode)
	SELECT RestaurantId, Street, City, [State], Country, ZipCode
	FROM @NewAddresses;
END`},
	{name: UpdateRestaurantProc, kind: kindProcedure, ddl: `
CREATE OR ALTER PROCEDURE [{{schema}}].[sp_UpdateRestaurant]
(
	@Id      int,
	@Name    nvarchar(200),
	@Cuisine nvarchar(100),
	@Website nvarchar(2048) = NULL,
	@Phone   nvarchar(50),
	@Street  nvarchar(200) = NULL,
	@City    nvarchar(100),
	@State   char(2),
	@ZipCode varchar(10),
	@Country nvarchar(100)
)
AS
BEGIN
	UPDATE [{{schema}}].[Restaurants]
	SET Name = @Name,
		CuisineType = @Cuisine,
		Website = @Website,
		Phone = @Phone
	WHERE Id = @Id;

	IF @@ROWCOUNT = 0
		RETURN 0;

	UPDATE [{{schema}}].[RestaurantLocation]
	SET Street = @Street,
		City = @City,
		[State] = @State,
		Country = @Country,
		ZipCode = @ZipCode
	WHERE RestaurantId = @Id;
END`},
}

const (
	tableExistsSQL = `
		SELECT 1
		WHERE OBJECT_ID(@objName, N'U') IS NOT NULL;
	`
	tableTypeExistsSQL = `
		SELECT 1
		FROM sys.types
		WHERE is_table_type = 1
		  AND name = @typeName
		  AND schema_id = SCHEMA_ID(@schemaName);
	`
	procedureExistsSQL = `
		SELECT 1
		WHERE EXISTS (
			SELECT 1
			FROM sys.objects
			WHERE object_id = OBJECT_ID(@objName)
			  AND type IN (N'P', N'PC')
		);
	`
)

// EnsureSchema creates every table, table type and procedure the repository
// needs that does not exist yet. Existing objects are left untouched. It
// returns the names of the objects it created.
func EnsureSchema(ctx context.Context, dbConn *sql.DB, schema string, log logger.LoggerService) ([]string, error) {
	if dbConn == nil {
		return nil, errors.New("db connection is required")
	}
	if log == nil {
		log = logger.Discard()
	}

	created := make([]string, 0)
	for _, obj := range schemaObjects {
		exists, err := objectExists(ctx, dbConn, schema, obj)
		if err != nil {
			return created, fmt.Errorf("check %s %s: %w", obj.kind, obj.name, err)
		}
		if exists {
			continue
		}
		if _, err := dbConn.ExecContext(ctx, withSchema(obj.ddl, schema)); err != nil {
			return created, fmt.Errorf("create %s %s: %w", obj.kind, obj.name, err)
		}
		log.Success(fmt.Sprintf("created %s %s", obj.kind, qualified(schema, obj.name)))
		created = append(created, obj.name)
	}
	return created, nil
}

func objectExists(ctx context.Context, dbConn *sql.DB, schema string, obj schemaObject) (bool, error) {
	var (
		query string
		args  []any
	)
	switch obj.kind {
	case kindTable:
		query = tableExistsSQL
		args = []any{sql.Named("objName", qualified(schema, obj.name))}
	case kindTableType:
		query = tableTypeExistsSQL
		args = []any{sql.Named("typeName", obj.name), sql.Named("schemaName", schema)}
	case kindProcedure:
		query = procedureExistsSQL
		args = []any{sql.Named("objName", qualified(schema, obj.name))}
	default:
		return false, fmt.Errorf("unknown object kind %q", obj.kind)
	}

	var found int
	err := dbConn.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
