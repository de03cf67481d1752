/* Copyright 2024 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command trindi runs an IBIS dialogue system on the console, over
// WebSockets, or over MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/db"
	"github.com/Comcast/trindi/db/bolt"
	"github.com/Comcast/trindi/db/script"
	"github.com/Comcast/trindi/domains/travel"
	"github.com/Comcast/trindi/grammar"
	"github.com/Comcast/trindi/ibis"
	"github.com/Comcast/trindi/sio"
	"github.com/Comcast/trindi/tools"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.LUTC)
}

func main() {
	cfg, err := ParseConfig(os.Args[1:])
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if 0 < cfg.Timeout {
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	sys, err := NewSystem(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer sys.Close(ctx)

	if err = sys.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

// System is the domain, database, and grammar that every dialogue
// shares.
type System struct {
	Config   *Config
	Domain   ibis.Domain
	Database ibis.Database
	Grammar  ibis.Grammar

	storage *bolt.Storage
}

// NewSystem loads everything the Config names.
func NewSystem(ctx context.Context, cfg *Config) (*System, error) {
	s := &System{
		Config: cfg,
	}

	var trip *travel.Travel
	if cfg.Domain == "" {
		var err error
		if trip, err = travel.New(); err != nil {
			return nil, err
		}
		s.Domain = trip.Domain
	} else {
		d, err := tools.LoadDomain(cfg.Domain)
		if err != nil {
			return nil, err
		}
		s.Domain = d
	}

	switch {
	case cfg.Compact:
		s.Grammar = grammar.Compact{}
	case cfg.Lexicon != "":
		l, err := grammar.LoadLexicon(cfg.Lexicon)
		if err != nil {
			return nil, err
		}
		s.Grammar = l
	case trip != nil:
		s.Grammar = trip.Lexicon
	default:
		s.Grammar = grammar.Compact{}
	}

	switch {
	case cfg.Script != "":
		d, err := script.LoadDatabase(cfg.Script)
		if err != nil {
			return nil, err
		}
		d.Verbose = cfg.Verbose
		s.Database = d
	case cfg.Bolt != "":
		st, err := bolt.NewStorage(cfg.Bolt)
		if err != nil {
			return nil, err
		}
		st.Debug = cfg.Verbose
		if err = st.Open(ctx); err != nil {
			return nil, err
		}
		s.storage = st
		s.Database = &bolt.Database{
			Storage: st,
			Table:   cfg.Table,
		}
	case cfg.Facts != "":
		ts, err := db.LoadTables(cfg.Facts)
		if err != nil {
			return nil, err
		}
		for _, t := range ts {
			t.Verbose = cfg.Verbose
		}
		s.Database = ts
	case trip != nil:
		s.Database = trip.Facts
	default:
		return nil, fmt.Errorf("domain %s needs a database (-f, -b, or -s)", cfg.Domain)
	}

	return s, nil
}

// NewDME makes a DME for one dialogue.
func (s *System) NewDME(port ibis.IO) (*ibis.DME, error) {
	d := ibis.NewDME(s.Domain, s.Database, s.Grammar, port)
	d.Verbose = s.Config.Verbose
	d.Trace = s.Config.Trace
	d.PrintState = s.Config.PrintState
	d.Control = &core.Control{
		Limit: s.Config.Limit,
	}
	return d, nil
}

// Run runs dialogues with the configured IO.
func (s *System) Run(ctx context.Context) error {
	cfg := s.Config
	switch cfg.IO {
	case "stdio":
		port := sio.NewStdio()
		port.Timestamps = cfg.Timestamps
		port.EchoInput = cfg.Echo
		d, err := s.NewDME(port)
		if err != nil {
			return err
		}
		return d.Run(ctx)

	case "ws":
		svc := &sio.WebSocketService{
			NewDME:  s.NewDME,
			Verbose: cfg.Verbose,
		}
		mux := http.NewServeMux()
		mux.Handle("/ws", svc)
		srv := &http.Server{
			Addr:    cfg.HTTP,
			Handler: mux,
		}
		go func() {
			<-ctx.Done()
			srv.Close()
		}()
		log.Printf("WebSocket service on %s/ws", cfg.HTTP)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil

	case "mqtt":
		opts, err := cfg.MQTT.ClientOptions()
		if err != nil {
			return err
		}
		port := sio.NewMQTT(mqtt.NewClient(opts), cfg.InTopic, cfg.OutTopic)
		port.Verbose = cfg.Verbose
		if err = port.Start(ctx); err != nil {
			return err
		}
		defer port.Stop(ctx)
		d, err := s.NewDME(port)
		if err != nil {
			return err
		}
		return d.Run(ctx)

	default:
		return fmt.Errorf("unknown IO %q", cfg.IO)
	}
}

// Close releases the storage (if any).
func (s *System) Close(ctx context.Context) error {
	if s.storage != nil {
		return s.storage.Close(ctx)
	}
	return nil
}
