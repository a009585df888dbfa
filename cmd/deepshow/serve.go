package main

import (
	"fmt"
	"net"

	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/san-kum/deepshow/internal/config"
	"github.com/san-kum/deepshow/internal/scenes"
	"github.com/san-kum/deepshow/internal/server"
)

var (
	serveAddr string
	serveQR   bool
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the show to browsers over HTTP and WebSocket",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&serveQR, "qr", false, "print a QR code of the viewer URL")
	cmd.Flags().DurationVar(&playTransition, "transition", config.DefaultTransition, "scene transition length (0 for cuts)")
	cmd.Flags().BoolVar(&playAutoplay, "autoplay", true, "start playing immediately")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if flags.Changed("transition") {
		cfg.Playback.Transition = playTransition
	}
	if flags.Changed("autoplay") {
		cfg.Playback.Autoplay = playAutoplay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Catalog:      catalog,
		Registry:     scenes.Default(),
		TickInterval: cfg.Playback.TickInterval,
		Transition:   cfg.Playback.Transition,
		Autoplay:     cfg.Playback.Autoplay,
	})
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}

	url := "http://" + ln.Addr().String() + "/"
	fmt.Printf("viewer at %s\n", url)
	if serveQR {
		qr, err := qrcode.New(url, qrcode.Medium)
		if err != nil {
			log.Warn().Err(err).Msg("qr code")
		} else {
			fmt.Println(qr.ToSmallString(false))
		}
	}

	return srv.Serve(cmd.Context(), ln)
}
