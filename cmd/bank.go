package cmd

import (
	"encoding/json"
	"fmt"

	"lending/core"
	"lending/handler/views"
	"lending/pkg/number"

	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "manage banks",
}

var addBankCmd = &cobra.Command{
	Use:   "add",
	Short: "init a bank, or every bank of the config file when --asset is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		ledger := provideLedger(database)

		banks := cfg.Banks
		if asset, _ := cmd.Flags().GetString("asset"); asset != "" {
			params, err := bankParamsFromFlags(cmd, asset)
			if err != nil {
				return err
			}

			banks = []core.BankParams{*params}
		}

		for idx := range banks {
			bank, err := ledger.InitBank(ctx, &banks[idx])
			if err != nil {
				return fmt.Errorf("init bank %s: %w", banks[idx].AssetID, err)
			}

			cmd.Println("bank", bank.AssetID, "ready")
		}

		return nil
	},
}

var listBanksCmd = &cobra.Command{
	Use:   "list",
	Short: "list banks",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		banks, err := provideBankStore(database).All(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(views.BankViews(banks))
	},
}

func bankParamsFromFlags(cmd *cobra.Command, asset string) (*core.BankParams, error) {
	flags := cmd.Flags()
	decimals, _ := flags.GetUint8("decimals")

	params := &core.BankParams{
		AssetID:  asset,
		Decimals: decimals,
	}

	for flag, field := range map[string]*uint64{
		"rate":         &params.InterestRate,
		"threshold":    &params.LiquidationThreshold,
		"max-ltv":      &params.MaxLTV,
		"bonus":        &params.LiquidationBonus,
		"close-factor": &params.LiquidationCloseFactor,
	} {
		v, _ := flags.GetString(flag)
		w, err := number.ToWad(number.Decimal(v))
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", flag, err)
		}

		*field = w
	}

	return params, nil
}

func init() {
	rootCmd.AddCommand(bankCmd)
	bankCmd.AddCommand(addBankCmd, listBanksCmd)

	flags := addBankCmd.Flags()
	flags.String("asset", "", "asset id")
	flags.Uint8("decimals", 8, "asset decimals")
	flags.String("rate", "0", "per second interest rate")
	flags.String("threshold", "0.75", "liquidation threshold")
	flags.String("max-ltv", "0.75", "max loan to value")
	flags.String("bonus", "0.05", "liquidation bonus")
	flags.String("close-factor", "0.5", "liquidation close factor")
}
