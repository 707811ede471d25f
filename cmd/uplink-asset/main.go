// Command uplink-asset is the operator tool for inspecting and
// administering on-chain assets outside of consensus: create/show,
// encode/decode, transfer/circulate (applied to an asset JSON file and
// saved back to it), and genesis-load into the LevelDB asset store. It
// never talks to the network or consensus layers.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thecharge/uplink/asset"
	"github.com/thecharge/uplink/config"
	"github.com/thecharge/uplink/genesis"
	"github.com/thecharge/uplink/store"
)

var (
	log     = logrus.StandardLogger()
	logOnce sync.Once
)

func initMiddleware(cmd *cobra.Command, _ []string) error {
	var err error
	logOnce.Do(func() {
		_ = godotenv.Load()
		lvl := os.Getenv("LOG_LEVEL")
		if lvl == "" {
			lvl = "info"
		}
		lv, e := logrus.ParseLevel(lvl)
		if e != nil {
			err = e
			return
		}
		log.SetLevel(lv)
	})
	return err
}

func main() {
	root := &cobra.Command{
		Use:               "uplink-asset",
		Short:             "inspect, create, and transfer uplink assets",
		PersistentPreRunE: initMiddleware,
	}
	root.AddCommand(createCmd(), showCmd(), encodeCmd(), decodeCmd(), transferCmd(), circulateCmd(), genesisLoadCmd())
	if err := root.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func requestLogger(cmd string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"command":    cmd,
		"request_id": uuid.New().String(),
	})
}

func createCmd() *cobra.Command {
	var name, issuerHex, addressHex string
	var supply int64
	var precision uint8
	var binary bool
	var out string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "create a new asset and save it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := requestLogger("create")
			issuerAddr, err := asset.ParseAddress(asset.KindAccount, issuerHex)
			if err != nil {
				return fmt.Errorf("issuer: %w", err)
			}
			assetAddr, err := asset.ParseAddress(asset.KindAsset, addressHex)
			if err != nil {
				return fmt.Errorf("address: %w", err)
			}

			typ := asset.Discrete()
			switch {
			case binary:
				typ = asset.Binary()
			case precision > 0:
				typ = asset.Fractional(precision)
			}

			a := asset.CreateAsset(name, issuerAddr, asset.Balance(supply), nil, typ, time.Now().UTC(), assetAddr, nil)
			if !asset.ValidateAsset(a) {
				return fmt.Errorf("constructed asset fails invariants")
			}
			if err := asset.SaveAsset(a, out); err != nil {
				return err
			}
			l.WithField("path", out).Info("asset created")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "asset name")
	cmd.Flags().StringVar(&issuerHex, "issuer", "", "issuer account address (hex)")
	cmd.Flags().StringVar(&addressHex, "address", "", "asset address (hex)")
	cmd.Flags().Int64Var(&supply, "supply", 0, "initial supply")
	cmd.Flags().Uint8Var(&precision, "precision", 0, "fractional precision (1-7); 0 means discrete")
	cmd.Flags().BoolVar(&binary, "binary", false, "create a Binary asset type")
	cmd.Flags().StringVar(&out, "out", "asset.json", "output JSON path")
	return cmd
}

func showCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "load and print an asset's JSON form",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := asset.LoadAsset(path)
			if err != nil {
				return err
			}
			data, err := asset.MarshalJSON(a)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			fmt.Printf("circulation: %d\n", asset.Circulation(a))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "asset.json", "asset JSON path")
	return cmd
}

func encodeCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "convert an asset's JSON form to its authoritative binary wire form",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := requestLogger("encode")
			a, err := asset.LoadAsset(in)
			if err != nil {
				return err
			}
			data := asset.Encode(a)
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("encode: write %q: %w", out, err)
			}
			l.WithFields(logrus.Fields{"in": in, "out": out, "bytes": len(data)}).Info("asset encoded")
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "file", "asset.json", "asset JSON path")
	cmd.Flags().StringVar(&out, "out", "asset.bin", "output binary path")
	return cmd
}

func decodeCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "convert an asset's binary wire form back to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := requestLogger("decode")
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("decode: read %q: %w", in, err)
			}
			a, err := asset.Decode(data)
			if err != nil {
				return err
			}
			if err := asset.SaveAsset(a, out); err != nil {
				return err
			}
			l.WithFields(logrus.Fields{"in": in, "out": out}).Info("asset decoded")
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "file", "asset.bin", "binary asset path")
	cmd.Flags().StringVar(&out, "out", "asset.json", "output JSON path")
	return cmd
}

func transferCmd() *cobra.Command {
	var path, fromHex, toHex string
	var amount int64

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "transfer holdings between two account holders and save the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := requestLogger("transfer")
			a, err := asset.LoadAsset(path)
			if err != nil {
				return err
			}
			from, err := decodeHolderHex(fromHex)
			if err != nil {
				return fmt.Errorf("from: %w", err)
			}
			to, err := decodeHolderHex(toHex)
			if err != nil {
				return fmt.Errorf("to: %w", err)
			}

			next, err := asset.TransferHoldings(a, from, to, asset.Balance(amount))
			if err != nil {
				l.WithError(err).Warn("transfer rejected")
				return err
			}
			if err := asset.SaveAsset(next, path); err != nil {
				return err
			}
			l.WithField("amount", amount).Info("transfer applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "asset.json", "asset JSON path")
	cmd.Flags().StringVar(&fromHex, "from", "", "source holder address (hex)")
	cmd.Flags().StringVar(&toHex, "to", "", "destination holder address (hex)")
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount to transfer")
	return cmd
}

func circulateCmd() *cobra.Command {
	var path, holderHex string
	var amount int64

	cmd := &cobra.Command{
		Use:   "circulate",
		Short: "move units between the uncirculated pool and a holder",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := requestLogger("circulate")
			a, err := asset.LoadAsset(path)
			if err != nil {
				return err
			}
			holder, err := decodeHolderHex(holderHex)
			if err != nil {
				return fmt.Errorf("holder: %w", err)
			}

			next, err := asset.CirculateSupply(a, holder, asset.Balance(amount))
			if err != nil {
				l.WithError(err).Warn("circulation rejected")
				return err
			}
			if err := asset.SaveAsset(next, path); err != nil {
				return err
			}
			l.WithField("amount", amount).Info("circulation applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "asset.json", "asset JSON path")
	cmd.Flags().StringVar(&holderHex, "holder", "", "holder address (hex)")
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount to circulate (negative to remove from circulation)")
	return cmd
}

func genesisLoadCmd() *cobra.Command {
	var dir, dbPath, configDir string

	cmd := &cobra.Command{
		Use:   "genesis-load",
		Short: "load preallocated asset files from a directory into the asset store",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := requestLogger("genesis-load")

			if configDir != "" {
				cfg, err := config.Load("", configDir)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if dir == "" {
					dir = cfg.Network.Preallocated
				}
				if dbPath == "" {
					dbPath = cfg.Storage.DBPath
				}
			}

			assets, err := genesis.LoadDirectory(dir)
			if err != nil {
				return err
			}

			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, a := range assets {
				if err := s.Put(a); err != nil {
					return err
				}
			}
			l.WithFields(logrus.Fields{
				"assets": len(assets),
				"db":     dbPath,
			}).Info("genesis load complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "preallocated", "", "directory of preallocated asset JSON files")
	cmd.Flags().StringVar(&dbPath, "db", "", "asset store LevelDB directory")
	cmd.Flags().StringVar(&configDir, "config-dir", "", "directory holding default.yaml; fills --preallocated/--db from network.preallocated/storage.db_path")
	return cmd
}

func decodeHolderHex(s string) (asset.Holder, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return asset.Holder{}, err
	}
	addr, err := asset.AccountAddress(raw)
	if err != nil {
		return asset.Holder{}, err
	}
	return asset.NewAccountHolder(addr), nil
}
