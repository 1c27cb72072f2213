// beacond runs a single randomness-beacon node on top of a libp2p host. It is
// a development harness: round nonces are fed on stdin as hex block hashes,
// one per line, and combined randomness is logged. The deal subcommand
// provisions key material for a local devnet committee.
package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/libp2p/go-libp2p"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spacemeshos/randomness-beacon/beacon"
	"github.com/spacemeshos/randomness-beacon/common/types"
	"github.com/spacemeshos/randomness-beacon/crypto/tbls"
	"github.com/spacemeshos/randomness-beacon/keys"
	"github.com/spacemeshos/randomness-beacon/p2p/pubsub"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "beacond",
		Short:         "randomness beacon gossip node",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBeacon(cmd)
		},
	}
	cmd.Flags().String("config", "", "path to an optional yaml config file")
	cmd.Flags().String("listen", "/ip4/0.0.0.0/tcp/7777", "libp2p listen multiaddr")
	cmd.Flags().String("committee", "committee.json", "path to the committee document")
	cmd.Flags().String("keystore", "keystore", "directory holding secret key material")
	cmd.Flags().Bool("flood", false, "flood-publish own shares to all topic peers")
	cmd.Flags().Uint16("threshold", beacon.DefaultConfig().Threshold, "shares needed to combine")
	cmd.Flags().Duration("send-interval", beacon.DefaultConfig().SendInterval, "own share rebroadcast interval")
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
	cmd.AddCommand(dealCmd())
	return cmd
}

func runBeacon(cmd *cobra.Command) error {
	if path := viper.GetString("config"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	host, err := libp2p.New(libp2p.ListenAddrStrings(viper.GetString("listen")))
	if err != nil {
		return fmt.Errorf("create libp2p host: %w", err)
	}
	defer host.Close()
	logger.Info("host listening",
		zap.Stringer("id", host.ID()),
		zap.Any("addresses", host.Addrs()),
	)

	ps, err := pubsub.New(ctx, logger.Named("pubsub"), host, pubsub.Config{
		Flood:    viper.GetBool("flood"),
		EngineID: beacon.EngineID,
	})
	if err != nil {
		return fmt.Errorf("create gossip engine: %w", err)
	}

	fsys := afero.NewOsFs()
	store, err := keys.NewStore(fsys, viper.GetString("keystore"))
	if err != nil {
		return err
	}
	registry, err := keys.NewRegistry(fsys, viper.GetString("committee"), store)
	if err != nil {
		return err
	}

	cfg := beacon.DefaultConfig()
	cfg.Threshold = viper.GetUint16("threshold")
	cfg.SendInterval = viper.GetDuration("send-interval")

	nonces := make(chan types.Nonce)
	coord := beacon.New(ps, registry, nonces,
		beacon.WithLogger(logger.Named("beacon")),
		beacon.WithConfig(cfg),
	)
	coord.Start()
	defer coord.Stop()

	go func() {
		for out := range coord.Results() {
			logger.Info("round randomness",
				zap.Stringer("nonce", out.Nonce),
				zap.Stringer("randomness", out.Randomness),
			)
		}
	}()
	go feedNonces(logger, nonces)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// feedNonces reads hex block hashes from stdin and opens a round for each.
func feedNonces(logger *zap.Logger, nonces chan<- types.Nonce) {
	defer close(nonces)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		nonce, err := types.HexToNonce(line)
		if err != nil {
			logger.Warn("skipping malformed nonce", zap.String("line", line), zap.Error(err))
			continue
		}
		nonces <- nonce
	}
}

func dealCmd() *cobra.Command {
	var (
		threshold    uint16
		participants uint16
		out          string
	)
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "generate devnet committee key material",
		Long: "deal runs a trusted-dealer key generation and writes one directory per\n" +
			"committee member (committee.json + keystore) plus an observer committee\n" +
			"document without secret material.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeal(threshold, participants, out)
		},
	}
	cmd.Flags().Uint16Var(&threshold, "threshold", 2, "shares needed to combine")
	cmd.Flags().Uint16Var(&participants, "participants", 3, "committee size")
	cmd.Flags().StringVar(&out, "out", "devnet", "output directory")
	return cmd
}

func runDeal(threshold, participants uint16, out string) error {
	kb, err := tbls.Deal(threshold, participants)
	if err != nil {
		return err
	}
	fsys := afero.NewOsFs()
	for i := uint16(0); i < participants; i++ {
		index := i
		storageKey := binary.BigEndian.AppendUint16(nil, index)
		nodeDir := filepath.Join(out, fmt.Sprintf("node-%d", index))
		store, err := keys.NewStore(fsys, filepath.Join(nodeDir, "keystore"))
		if err != nil {
			return err
		}
		if err := store.Put(storageKey, kb.Secrets[index]); err != nil {
			return err
		}
		parts := &beacon.KeyboxParts{
			Index:            &index,
			StorageKey:       storageKey,
			VerificationKeys: kb.VerificationKeys,
			MasterKey:        kb.MasterKey,
			Threshold:        kb.Threshold,
			Participants:     kb.Participants,
		}
		if err := keys.WriteCommittee(fsys, filepath.Join(nodeDir, "committee.json"), parts); err != nil {
			return err
		}
	}
	observer := &beacon.KeyboxParts{
		VerificationKeys: kb.VerificationKeys,
		MasterKey:        kb.MasterKey,
		Threshold:        kb.Threshold,
		Participants:     kb.Participants,
	}
	if err := keys.WriteCommittee(fsys, filepath.Join(out, "committee.json"), observer); err != nil {
		return err
	}
	fmt.Printf("dealt %d/%d committee under %s\n", threshold, participants, out)
	return nil
}
