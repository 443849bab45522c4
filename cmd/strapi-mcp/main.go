package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	strapi "github.com/l33tdawg/strapi-mcp"
)

var (
	baseURL    string
	apiToken   string
	devMode    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "strapi-mcp",
	Short: "MCP server exposing a Strapi CMS over stdio",
	RunE:  serve,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&baseURL, "url", "u", "", "strapi base url")
	rootCmd.PersistentFlags().StringVarP(&apiToken, "token", "t", "", "strapi api token")
	rootCmd.PersistentFlags().BoolVarP(&devMode, "dev", "d", false, "use the content-type-builder metadata endpoint")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "yaml config file")
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.URL = baseURL
	}
	if apiToken != "" {
		cfg.Token = apiToken
	}
	if devMode {
		cfg.DevMode = true
	}
	if cfg.Token == "" {
		return fmt.Errorf("strapi api token is required (STRAPI_API_TOKEN or --token)")
	}

	client := strapi.NewClient(&strapi.ClientOptions{
		BaseURL: cfg.URL,
		Token:   cfg.Token,
		DevMode: cfg.DevMode,
	})
	return strapi.NewServer(client).AsStdio().Run()
}

func main() {
	godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
