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

package sio

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTOptions follows mosquitto_sub's command-line arguments.
type MQTTOptions struct {
	Broker    string `json:"broker" yaml:"broker"`
	Port      int    `json:"port" yaml:"port"`
	ClientID  string `json:"clientId,omitempty" yaml:"clientId,omitempty"`
	KeepAlive int    `json:"keepAlive,omitempty" yaml:"keepAlive,omitempty"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	Password  string `json:"password,omitempty" yaml:"password,omitempty"`
	Reconnect bool   `json:"reconnect,omitempty" yaml:"reconnect,omitempty"`
	Clean     bool   `json:"clean,omitempty" yaml:"clean,omitempty"`

	CertFilename string `json:"cert,omitempty" yaml:"cert,omitempty"`
	KeyFilename  string `json:"key,omitempty" yaml:"key,omitempty"`
	CAFilename   string `json:"cafile,omitempty" yaml:"cafile,omitempty"`
	Insecure     bool   `json:"insecure,omitempty" yaml:"insecure,omitempty"`
}

// DefaultMQTTOptions is a local broker without TLS.
var DefaultMQTTOptions = MQTTOptions{
	Broker:    "tcp://localhost",
	Port:      1883,
	KeepAlive: 10,
	Clean:     true,
}

// ClientOptions makes Paho options.
func (o *MQTTOptions) ClientOptions() (*mqtt.ClientOptions, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("%s:%d", o.Broker, o.Port))
	opts.SetClientID(o.ClientID)
	opts.SetKeepAlive(time.Second * time.Duration(o.KeepAlive))
	opts.Username = o.Username
	opts.Password = o.Password
	opts.AutoReconnect = o.Reconnect
	opts.CleanSession = o.Clean

	tlsConf := &tls.Config{
		InsecureSkipVerify: o.Insecure,
	}
	if o.CAFilename != "" {
		rootCAs, _ := x509.SystemCertPool()
		if rootCAs == nil {
			rootCAs = x509.NewCertPool()
		}
		certs, err := ioutil.ReadFile(o.CAFilename)
		if err != nil {
			return nil, err
		}
		if ok := rootCAs.AppendCertsFromPEM(certs); !ok {
			log.Println("No certs appended, using system certs only")
		}
		tlsConf.RootCAs = rootCAs
	}
	if o.KeyFilename != "" {
		cert, err := tls.LoadX509KeyPair(o.CertFilename, o.KeyFilename)
		if err != nil {
			return nil, err
		}
		tlsConf.Certificates = []tls.Certificate{cert}
	}
	opts.SetTLSConfig(tlsConf)

	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Printf("MQTT connection lost: %s", err)
	}

	return opts, nil
}

// MQTT is an IO that hears the user on one topic and speaks on
// another.
type MQTT struct {
	Client mqtt.Client

	// InTopic and OutTopic can have the form TOPIC:QOS.
	InTopic  string
	OutTopic string

	// Quiesce is the disconnection quiescence in milliseconds.
	Quiesce uint

	// InTimeout bounds how long an incoming message can wait to
	// be queued.
	InTimeout time.Duration

	Verbose bool

	incoming chan string
	stop     chan struct{}
	once     sync.Once
}

// NewMQTT makes an MQTT IO.  Call Start before use.
func NewMQTT(client mqtt.Client, inTopic, outTopic string) *MQTT {
	return &MQTT{
		Client:    client,
		InTopic:   inTopic,
		OutTopic:  outTopic,
		Quiesce:   100,
		InTimeout: time.Second,
		incoming:  make(chan string, 16),
		stop:      make(chan struct{}),
	}
}

func (c *MQTT) logf(format string, args ...interface{}) {
	if c.Verbose {
		log.Printf("MQTT "+format, args...)
	}
}

// Start connects (if necessary) and subscribes to InTopic.
func (c *MQTT) Start(ctx context.Context) error {
	if !c.Client.IsConnected() {
		c.logf("connecting to broker")
		if t := c.Client.Connect(); t.Wait() && t.Error() != nil {
			return t.Error()
		}
	}
	topic, qos := parseTopic(c.InTopic)
	if topic == "" {
		return errors.New("no input topic")
	}
	c.logf("subscribing to %s (%d)", topic, qos)
	if t := c.Client.Subscribe(topic, qos, c.inHandler); t.Wait() && t.Error() != nil {
		return t.Error()
	}
	return nil
}

// inHandler is a Paho publish handler for InTopic.
func (c *MQTT) inHandler(client mqtt.Client, msg mqtt.Message) {
	c.logf("incoming: %s %s", msg.Topic(), msg.Payload())
	u := ParseUtterance(msg.Payload())
	if u.Type != "input" || u.Text == "" {
		return
	}

	to := time.NewTimer(c.InTimeout)
	defer to.Stop()

	select {
	case <-c.stop:
	case c.incoming <- u.Text:
	case <-to.C:
		log.Printf("MQTT dropping %q due to stall", u.Text)
	}
}

// Input implements ibis.IO.  After Stop, Input returns io.EOF.
func (c *MQTT) Input(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.stop:
		return "", io.EOF
	case text := <-c.incoming:
		return text, nil
	}
}

func (c *MQTT) publish(u Utterance) error {
	topic, qos := parseTopic(c.OutTopic)
	t := c.Client.Publish(topic, qos, false, u.bytes())
	t.Wait()
	return t.Error()
}

// Output implements ibis.IO.
func (c *MQTT) Output(ctx context.Context, text string) error {
	return c.publish(Utterance{Type: "output", Text: text})
}

// Notice implements ibis.Noticer.
func (c *MQTT) Notice(ctx context.Context, text string) error {
	return c.publish(Utterance{Type: "notice", Text: text})
}

// Stop unsubscribes and disconnects.
func (c *MQTT) Stop(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		close(c.stop)
		topic, _ := parseTopic(c.InTopic)
		if t := c.Client.Unsubscribe(topic); t.Wait() && t.Error() != nil {
			err = t.Error()
		}
		c.logf("disconnecting")
		c.Client.Disconnect(c.Quiesce)
	})
	return err
}

// parseTopic extracts the QoS from a topic of the form TOPIC:QOS.
func parseTopic(s string) (string, byte) {
	s = strings.TrimSpace(s)
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return s, 0
	}
	qos, err := strconv.Atoi(s[i+1:])
	if err != nil || qos < 0 || 2 < qos {
		return s, 0
	}
	return s[:i], byte(qos)
}
