package cmd

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pterm/pterm"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/signature"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	from      string
	to        string
	amount    string
	fee       string
	data      string
	signToken string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the mempool",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Sender address, defaults to the address of the key.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Recipient address.")
	sendCmd.Flags().StringVarP(&amount, "amount", "v", "0", "Amount to send.")
	sendCmd.Flags().StringVarP(&fee, "fee", "c", "0", "Fee offered for inclusion.")
	sendCmd.Flags().StringVarP(&data, "data", "d", "", "Payload anchored with the transaction.")
	sendCmd.Flags().StringVarP(&signToken, "signature", "s", "", "Provenance token, the key signs the transaction when empty.")
}

func sendRun(cmd *cobra.Command, args []string) error {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("parsing amount: %w", err)
	}

	fe, err := decimal.NewFromString(fee)
	if err != nil {
		return fmt.Errorf("parsing fee: %w", err)
	}

	var submit submitTx
	switch signToken {
	case "":
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			return err
		}

		if from == "" {
			from = crypto.PubkeyToAddress(privateKey.PublicKey).String()
		}

		// The id covers everything but the signature, so the key signs
		// the id of the unsigned transaction.
		unsigned := database.NewTx(from, to, amt, fe, data, 0, "")

		sig, err := signature.Sign(unsigned.ID, privateKey)
		if err != nil {
			return err
		}

		submit = submitTx{From: from, To: to, Amount: amt, Fee: fe, Data: data, TimeStamp: unsigned.TimeStamp, Signature: sig}

	default:
		submit = submitTx{From: from, To: to, Amount: amt, Fee: fe, Data: data, Signature: signToken}
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := call(http.MethodPost, "/ledger/tx/submit", submit, &resp); err != nil {
		return err
	}

	pterm.Success.Printfln("transaction %s is pending", resp.ID)

	return nil
}
