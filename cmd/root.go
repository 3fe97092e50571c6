package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "feeder",
	Short: "Populate the OC Pizza database with consistent fake data",
	Long: `Feeder is a one-shot batch loader for the OC Pizza relational schema.

It generates a referentially consistent synthetic dataset (addresses, stores,
members, accounts, orders, bills, products, recipes, catalog items and their
many-to-many relations) and inserts it in foreign-key dependency order.

Database Support:
- PostgreSQL
- MySQL
- SQLite`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./feeder.config.json)")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("feeder.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
