package config

import (
	"os"
)

// Backend selectors for the clinic store.
const (
	BackendMySQL = "mysql"
	BackendNeo4j = "neo4j"
)

// Config holds the configuration values for the application.
type Config struct {
	ListenPort     string
	StorageBackend string
	MySQLDSN       string
	Neo4jURI       string
	Neo4jUser      string
	Neo4jPassword  string
	Neo4jDatabase  string
	MongoURI       string
	MongoDatabase  string
}

// LoadConfig loads configuration from environment variables or uses default values.
func LoadConfig() (*Config, error) {
	listenPort := os.Getenv("LISTEN_PORT")
	if listenPort == "" {
		listenPort = "8080"
	}

	storageBackend := os.Getenv("STORAGE_BACKEND")
	if storageBackend == "" {
		storageBackend = BackendMySQL
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "root:root@tcp(localhost:3306)/clinic_db?charset=utf8mb4"
	}

	neo4jURI := os.Getenv("NEO4J_URI")
	if neo4jURI == "" {
		neo4jURI = "bolt://localhost:7687"
	}

	neo4jUser := os.Getenv("NEO4J_USER")
	if neo4jUser == "" {
		neo4jUser = "neo4j"
	}

	neo4jPassword := os.Getenv("NEO4J_PASSWORD")
	if neo4jPassword == "" {
		neo4jPassword = "clinicdatabase"
	}

	neo4jDatabase := os.Getenv("NEO4J_DATABASE")
	if neo4jDatabase == "" {
		neo4jDatabase = "neo4j"
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/?directConnection=true"
	}

	mongoDatabase := os.Getenv("MONGO_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "clinic_messaging"
	}

	return &Config{
		ListenPort:     listenPort,
		StorageBackend: storageBackend,
		MySQLDSN:       mysqlDSN,
		Neo4jURI:       neo4jURI,
		Neo4jUser:      neo4jUser,
		Neo4jPassword:  neo4jPassword,
		Neo4jDatabase:  neo4jDatabase,
		MongoURI:       mongoURI,
		MongoDatabase:  mongoDatabase,
	}, nil
}
