package cmd

import (
	"errors"
	"fmt"

	"lingua_backend/internal/util"

	"github.com/spf13/cobra"
)

// tokenCmd 本地调试用，生产环境令牌由身份服务签发
var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue a development JWT for the given user id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Server.Mode == "release" {
			return errors.New("refusing to issue development tokens in release mode")
		}

		email, _ := cmd.Flags().GetString("email")
		token, err := util.GenerateJWT(args[0], email, cfg.JWT.Secret, cfg.JWT.Expiration())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("email", "", "Email claim")
}
